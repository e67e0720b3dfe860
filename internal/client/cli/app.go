// Package cli is the interactive terminal client: a REPL over the local
// store, with background goroutines draining the sync outbox and polling the
// live today view.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"time"

	"babysteps/internal/client/config"
	"babysteps/internal/client/live"
	"babysteps/internal/client/localstore"
	"babysteps/internal/client/store"
	syncx "babysteps/internal/client/sync"
	"babysteps/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	local   *localstore.Store
	client  *syncx.HTTPClient
	adapter *syncx.Adapter
	outbox  *syncx.Outbox
	store   *store.Store
	bus     *live.Bus
	poller  *live.Poller
	reader  *bufio.Reader

	// now is a clock seam for tests.
	now func() time.Time
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(slogger)

	local, err := localstore.Open(ctx, c.LocalDBPath)
	if err != nil {
		return nil, err
	}

	client := syncx.NewHTTPClient(c.ServerBaseURL, nil)
	adapter := syncx.NewAdapter(client)
	outbox := syncx.NewOutbox(adapter, logger)
	st := store.New(logger, outbox, client, local)
	bus := live.NewBus()

	poller := live.NewPoller(client, logger, bus, adapter.Identity, func() string {
		baby, ok := st.CurrentBaby()
		if !ok {
			return ""
		}
		return baby.ID
	})
	poller.SetInterval(c.PollInterval)
	poller.SetLocalRevision(st.Revision)

	// Every local mutation pokes the pollers.
	st.SetOnMutate(bus.Notify)

	return &App{
		config:  c,
		logger:  logger,
		local:   local,
		client:  client,
		adapter: adapter,
		outbox:  outbox,
		store:   st,
		bus:     bus,
		poller:  poller,
		reader:  bufio.NewReader(os.Stdin),
		now:     time.Now,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.adapter.Identity() != ""
}

// restoreSession re-associates the store with server data using the
// persisted email, if any.
func (a *App) restoreSession(ctx context.Context) {
	email, err := a.local.LoadEmail(ctx)
	if err != nil {
		a.logger.Error(ctx, "loading stored email", "error", err)
		return
	}
	if email == "" {
		return
	}

	a.adapter.SetIdentity(email)
	if err := a.store.InitializeProfile(ctx, email); err != nil {
		a.logger.Error(ctx, "restoring session", "email", email, "error", err)
		return
	}

	if babyID, err := a.local.LoadCurrentBaby(ctx); err == nil && babyID != "" {
		a.store.SelectBaby(babyID)
	}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.outbox.Run(ctx)
	go a.poller.Run(ctx)

	a.restoreSession(ctx)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))

	// Final flush so a quick add right before exit still reaches the server.
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	a.outbox.Drain(flushCtx)

	if err := a.local.Close(); err != nil {
		a.logger.Error(ctx, "closing local db", "error", err)
	}
}

func (a *App) getStatus() string {
	s := ""
	if email := a.adapter.Identity(); email != "" {
		s = email
	}
	if baby, ok := a.store.CurrentBaby(); ok {
		if s != "" {
			s += " / "
		}
		s += baby.Name
	}
	if n := a.outbox.PendingCount(); n > 0 {
		s += " [syncing]"
	}
	return s
}
