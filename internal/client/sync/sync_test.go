package sync

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"babysteps/internal/common"
	"babysteps/internal/logging"
	"babysteps/internal/models"

	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError})))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

type counters struct {
	ensureUser  int64
	ensureBaby  int64
	createEntry int64
	deleteEntry int64
}

func newTestServer(t *testing.T, c *counters, failEntries bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users/ensure", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&c.ensureUser, 1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(models.UserProfile{ID: "u1", Email: body["email"]})
	})
	mux.HandleFunc("POST /api/babies", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&c.ensureBaby, 1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/babies/{babyID}/entries", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&c.createEntry, 1)
		if failEntries {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("DELETE /api/babies/{babyID}/entries/{entryID}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&c.deleteEntry, 1)
		require.NotEmpty(t, r.URL.Query().Get("email"))
		require.NotEmpty(t, r.URL.Query().Get("type"))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func wrapFeeding(t *testing.T, f models.FeedingEntry) models.Envelope {
	t.Helper()
	env, err := models.Wrap(f)
	require.NoError(t, err)
	return env
}

func TestEnsureCascadeIsCachedPerSession(t *testing.T) {
	var c counters
	srv := newTestServer(t, &c, false)

	adapter := NewAdapter(NewHTTPClient(srv.URL, srv.Client()))
	adapter.SetIdentity("parent@example.com")

	baby := models.Baby{ID: "b1", Name: "Luna"}
	ctx := context.Background()

	env := wrapFeeding(t, models.FeedingEntry{ID: "f1", BabyID: "b1", Kind: models.FeedingBottle})
	require.NoError(t, adapter.CreateEntry(ctx, baby, env))
	require.NoError(t, adapter.CreateEntry(ctx, baby, env))

	require.EqualValues(t, 1, c.ensureUser, "user must be ensured once per session")
	require.EqualValues(t, 1, c.ensureBaby, "baby must be ensured once per session")
	require.EqualValues(t, 2, c.createEntry)
	require.Equal(t, "u1", adapter.UserID())

	// Identity change re-verifies on next create.
	adapter.SetIdentity("other@example.com")
	require.NoError(t, adapter.CreateEntry(ctx, baby, env))
	require.EqualValues(t, 2, c.ensureUser)
	require.EqualValues(t, 2, c.ensureBaby)
}

func TestMutationsWithoutIdentityShortCircuit(t *testing.T) {
	var c counters
	srv := newTestServer(t, &c, false)

	adapter := NewAdapter(NewHTTPClient(srv.URL, srv.Client()))
	ctx := context.Background()

	err := adapter.DeleteEntry(ctx, "b1", "f1", models.EntryKindFeeding)
	require.ErrorIs(t, err, common.ErrorNoIdentity)

	env := wrapFeeding(t, models.FeedingEntry{ID: "f1", BabyID: "b1"})
	err = adapter.CreateEntry(ctx, models.Baby{ID: "b1"}, env)
	require.ErrorIs(t, err, common.ErrorNoIdentity)

	require.Zero(t, c.ensureUser, "no network call may happen without an identity")
	require.Zero(t, c.deleteEntry)
}

func TestFetchProfileNotFound(t *testing.T) {
	var c counters
	srv := newTestServer(t, &c, false)

	client := NewHTTPClient(srv.URL, srv.Client())
	_, err := client.FetchProfile(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestOutboxMarksSyncedOnSuccess(t *testing.T) {
	var c counters
	srv := newTestServer(t, &c, false)

	adapter := NewAdapter(NewHTTPClient(srv.URL, srv.Client()))
	adapter.SetIdentity("parent@example.com")
	outbox := NewOutbox(adapter, testLogger())

	baby := models.Baby{ID: "b1"}
	env := wrapFeeding(t, models.FeedingEntry{ID: "f1", BabyID: "b1"})

	outbox.EnqueueCreate(baby, env, "f1")
	require.Equal(t, StatusPending, outbox.EntryStatus("f1"))

	outbox.Drain(context.Background())
	require.Equal(t, StatusSynced, outbox.EntryStatus("f1"))
	require.Zero(t, outbox.PendingCount())
}

func TestOutboxMarksFailedAfterRetries(t *testing.T) {
	var c counters
	srv := newTestServer(t, &c, true)

	adapter := NewAdapter(NewHTTPClient(srv.URL, srv.Client()))
	adapter.SetIdentity("parent@example.com")

	outbox := NewOutbox(adapter, testLogger())
	outbox.maxRetries = 2
	outbox.baseBackoff = time.Millisecond

	env := wrapFeeding(t, models.FeedingEntry{ID: "f1", BabyID: "b1"})
	outbox.EnqueueCreate(models.Baby{ID: "b1"}, env, "f1")
	outbox.Drain(context.Background())

	require.Equal(t, StatusFailed, outbox.EntryStatus("f1"))
	require.EqualValues(t, 3, c.createEntry, "initial attempt plus two retries")
}

func TestOutboxSkipsWithoutIdentity(t *testing.T) {
	var c counters
	srv := newTestServer(t, &c, false)

	adapter := NewAdapter(NewHTTPClient(srv.URL, srv.Client()))
	outbox := NewOutbox(adapter, testLogger())

	outbox.EnqueueDelete("b1", "f1", models.EntryKindFeeding)
	outbox.Drain(context.Background())

	require.Equal(t, StatusSkipped, outbox.EntryStatus("f1"))
	require.Zero(t, c.deleteEntry)
}

func TestUnknownEntryReportsSynced(t *testing.T) {
	outbox := NewOutbox(NewAdapter(nil), testLogger())
	require.Equal(t, StatusSynced, outbox.EntryStatus("came-from-server"))
}
