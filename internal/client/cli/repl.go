package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddBaby(ctx context.Context) error
	SelectBaby(ctx context.Context) error
	Feed(ctx context.Context) error
	StartFeeding(ctx context.Context) error
	StopFeeding(ctx context.Context) error
	StartSleep(ctx context.Context) error
	StopSleep(ctx context.Context) error
	QuickDiaper(ctx context.Context, kind string) error
	Growth(ctx context.Context) error
	Today(ctx context.Context) error
	Advisories(ctx context.Context) error
	Health(ctx context.Context) error
	Settings(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the babysteps CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bs> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: baby, select, feed, feedstart, feedstop, sleepstart, sleepstop, diaper <wet|soiled|mixed>, growth, today, alerts, health, settings, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "baby":
			_ = a.AddBaby(ctx)

		case "select":
			_ = a.SelectBaby(ctx)

		case "feed":
			_ = a.Feed(ctx)

		case "feedstart":
			_ = a.StartFeeding(ctx)

		case "feedstop":
			_ = a.StopFeeding(ctx)

		case "sleepstart":
			_ = a.StartSleep(ctx)

		case "sleepstop":
			_ = a.StopSleep(ctx)

		case "diaper":
			if len(args) == 0 {
				printlnFn("Usage: diaper <wet|soiled|mixed>")
				continue
			}
			_ = a.QuickDiaper(ctx, args[0])

		case "growth":
			_ = a.Growth(ctx)

		case "t", "today":
			_ = a.Today(ctx)

		case "alerts":
			_ = a.Advisories(ctx)

		case "health":
			_ = a.Health(ctx)

		case "settings":
			_ = a.Settings(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
