package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Login prompts for the identifying email, creates the household account on
// the server when missing, and bootstraps the local store from it.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter your email", os.Stdout)
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		printlnFn("Email cannot be empty")
		return nil
	}

	if _, err := a.client.EnsureUser(ctx, email); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.adapter.SetIdentity(email)

	if err := a.store.InitializeProfile(ctx, email); err != nil {
		printlnFn("Could not load profile:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s", email))
	a.poller.Refresh(ctx)
	return nil
}

// Logout clears the persisted email and empties local state.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	a.adapter.SetIdentity("")
	printlnFn("Logged out")
	return nil
}
