package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"babysteps/internal/common"
	"babysteps/internal/logging"
	"babysteps/internal/models"
	sc "babysteps/internal/server/config"
	"babysteps/internal/server/repositories/entries"
	"babysteps/internal/server/repositories/family"
)

type fakeUsers struct {
	byEmail map[string]*models.UserProfile
}

func (f *fakeUsers) EnsureByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	u := &models.UserProfile{ID: uuid.NewString(), Email: email, Role: "parent", Locale: "en"}
	f.byEmail[email] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Update(ctx context.Context, profile *models.UserProfile) error {
	f.byEmail[profile.Email] = profile
	return nil
}

type fakeBabies struct {
	byID  map[string]models.Baby
	owner map[string]string
	order []string
}

func (f *fakeBabies) Upsert(ctx context.Context, userID string, baby *models.Baby) error {
	if _, ok := f.byID[baby.ID]; !ok {
		f.order = append(f.order, baby.ID)
	}
	f.byID[baby.ID] = *baby
	f.owner[baby.ID] = userID
	return nil
}

func (f *fakeBabies) GetByID(ctx context.Context, babyID string) (*models.Baby, error) {
	b, ok := f.byID[babyID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &b, nil
}

func (f *fakeBabies) ListByUser(ctx context.Context, userID string) ([]models.Baby, error) {
	out := []models.Baby{}
	for _, id := range f.order {
		if f.owner[id] == userID {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeBabies) SetAvatarURL(ctx context.Context, babyID, url string) error {
	b, ok := f.byID[babyID]
	if !ok {
		return common.ErrorNotFound
	}
	b.AvatarURL = url
	f.byID[babyID] = b
	return nil
}

type fakeEntries struct {
	rows []entries.Row
}

func (f *fakeEntries) Upsert(ctx context.Context, row *entries.Row) error {
	for i, r := range f.rows {
		if r.ID == row.ID {
			f.rows[i] = *row
			return nil
		}
	}
	f.rows = append(f.rows, *row)
	return nil
}

func (f *fakeEntries) Delete(ctx context.Context, babyID, entryID string, kind models.EntryKind) error {
	for i, r := range f.rows {
		if r.ID == entryID && r.BabyID == babyID && r.Kind == kind {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeEntries) ListByBaby(ctx context.Context, babyID string) ([]entries.Row, error) {
	out := []entries.Row{}
	for _, r := range f.rows {
		if r.BabyID == babyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeEntries) ListByBabySince(ctx context.Context, babyID string, since time.Time) ([]entries.Row, error) {
	out := []entries.Row{}
	for _, r := range f.rows {
		if r.BabyID == babyID && !r.RecordedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSettings struct {
	byUser map[string]*models.AppSettings
}

func (f *fakeSettings) GetByUser(ctx context.Context, userID string) (*models.AppSettings, error) {
	if s, ok := f.byUser[userID]; ok {
		cp := *s
		return &cp, nil
	}
	s := models.DefaultSettings(userID)
	s.ID = uuid.NewString()
	f.byUser[userID] = &s
	cp := s
	return &cp, nil
}

func (f *fakeSettings) Save(ctx context.Context, s *models.AppSettings) error {
	f.byUser[s.UserID] = s
	return nil
}

type fakeFamily struct {
	byID map[string]*family.Row
}

func (f *fakeFamily) Insert(ctx context.Context, m *models.FamilyMember, codeHash string) error {
	cp := *m
	f.byID[m.ID] = &family.Row{Member: &cp, CodeHash: codeHash}
	return nil
}

func (f *fakeFamily) GetByID(ctx context.Context, id string) (*family.Row, error) {
	row, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *row.Member
	return &family.Row{Member: &cp, CodeHash: row.CodeHash}, nil
}

func (f *fakeFamily) Redeem(ctx context.Context, id string, verify func(row *family.Row) error) (*models.FamilyMember, error) {
	row, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if err := verify(row); err != nil {
		return nil, err
	}
	row.Member.Status = models.InviteAccepted
	cp := *row.Member
	return &cp, nil
}

func (f *fakeFamily) ListByOwner(ctx context.Context, ownerUserID string) ([]*models.FamilyMember, error) {
	out := []*models.FamilyMember{}
	for _, row := range f.byID {
		if row.Member.OwnerUserID == ownerUserID {
			cp := *row.Member
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeFamily) UpdateStatus(ctx context.Context, id string, status models.InviteStatus) error {
	row, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	row.Member.Status = status
	return nil
}

type fakePresigner struct{}

func (fakePresigner) PresignedPutURL(ctx context.Context, babyID string) (string, string, error) {
	return "avatars/" + babyID, "http://s3.test/put/" + babyID, nil
}

func (fakePresigner) PresignedGetURL(ctx context.Context, key string) (string, error) {
	return "http://s3.test/get/" + key, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &sc.Config{}
	cfg.LoadDefaults()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	h := NewHandler(logger, cfg,
		&fakeUsers{byEmail: map[string]*models.UserProfile{}},
		&fakeBabies{byID: map[string]models.Baby{}, owner: map[string]string{}},
		&fakeEntries{},
		&fakeSettings{byUser: map[string]*models.AppSettings{}},
		&fakeFamily{byID: map[string]*family.Row{}},
		fakePresigner{},
	)

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, email string, body any, out any) int {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set(common.IdentityHeaderName, email)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func ensureHousehold(t *testing.T, base string) (models.UserProfile, models.Baby) {
	t.Helper()

	var profile models.UserProfile
	status := doJSON(t, http.MethodPost, base+"/api/users/ensure", "",
		map[string]string{"email": "mom@example.com"}, &profile)
	require.Equal(t, http.StatusOK, status)

	baby := models.Baby{ID: "b1", Name: "Luna", BirthDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)}
	status = doJSON(t, http.MethodPost, base+"/api/babies", "mom@example.com", baby, nil)
	require.Equal(t, http.StatusOK, status)

	return profile, baby
}

func TestEnsureUser_Idempotent(t *testing.T) {
	srv := newTestServer(t)

	var first, second models.UserProfile
	status := doJSON(t, http.MethodPost, srv.URL+"/api/users/ensure", "",
		map[string]string{"email": "Mom@Example.com"}, &first)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/users/ensure", "",
		map[string]string{"email": "mom@example.com"}, &second)
	require.Equal(t, http.StatusOK, status)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "mom@example.com", second.Email)
}

func TestUpsertBaby_UnknownIdentity(t *testing.T) {
	srv := newTestServer(t)

	baby := models.Baby{ID: "b1", Name: "Luna"}
	status := doJSON(t, http.MethodPost, srv.URL+"/api/babies", "nobody@example.com", baby, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestEntryLifecycle_AndTodayView(t *testing.T) {
	srv := newTestServer(t)
	_, baby := ensureHousehold(t, srv.URL)

	feeding := models.FeedingEntry{
		ID: "f1", BabyID: baby.ID, Kind: models.FeedingBottle,
		AmountML: 120, StartTime: time.Now().Add(-time.Minute),
	}
	env, err := models.Wrap(feeding)
	require.NoError(t, err)

	status := doJSON(t, http.MethodPost, srv.URL+"/api/babies/b1/entries", "mom@example.com", env, nil)
	require.Equal(t, http.StatusOK, status)

	base := time.Now()
	end := base.Add(-2 * time.Minute)
	sleep := models.SleepEntry{
		ID: "s1", BabyID: baby.ID, Type: models.SleepNap,
		StartTime: base.Add(-32 * time.Minute), EndTime: &end,
	}
	envSleep, err := models.Wrap(sleep)
	require.NoError(t, err)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/babies/b1/entries", "mom@example.com", envSleep, nil)
	require.Equal(t, http.StatusOK, status)

	var view models.TodayView
	status = doJSON(t, http.MethodGet, srv.URL+"/api/babies/b1/live", "mom@example.com", nil, &view)
	require.Equal(t, http.StatusOK, status)

	require.Equal(t, 1, view.Stats.FeedingCount)
	require.InDelta(t, 120.0, view.Stats.TotalMilkML, 0.001)
	require.Equal(t, 30, view.Stats.SleepMinutes)
	require.False(t, view.Stats.CurrentlySleeping)
	require.Len(t, view.Feedings, 1)
	require.Len(t, view.Sleeps, 1)

	// Update the feeding amount and confirm the view follows.
	feeding.AmountML = 150
	env, err = models.Wrap(feeding)
	require.NoError(t, err)
	status = doJSON(t, http.MethodPut, srv.URL+"/api/babies/b1/entries/f1?type=feeding", "mom@example.com", env, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, http.MethodGet, srv.URL+"/api/babies/b1/live", "mom@example.com", nil, &view)
	require.Equal(t, http.StatusOK, status)
	require.InDelta(t, 150.0, view.Stats.TotalMilkML, 0.001)

	// Delete it.
	status = doJSON(t, http.MethodDelete, srv.URL+"/api/babies/b1/entries/f1?type=feeding", "mom@example.com", nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = doJSON(t, http.MethodDelete, srv.URL+"/api/babies/b1/entries/f1?type=feeding", "mom@example.com", nil, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestCreateEntry_UnknownKind(t *testing.T) {
	srv := newTestServer(t)
	ensureHousehold(t, srv.URL)

	env := models.Envelope{Kind: "bathtime", BabyID: "b1", Details: json.RawMessage(`{}`)}
	status := doJSON(t, http.MethodPost, srv.URL+"/api/babies/b1/entries", "mom@example.com", env, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestProfileBundle_CollectsEverything(t *testing.T) {
	srv := newTestServer(t)
	_, baby := ensureHousehold(t, srv.URL)

	diaper := models.DiaperEntry{ID: "d1", BabyID: baby.ID, Time: time.Now(), Type: models.DiaperWet}
	env, err := models.Wrap(diaper)
	require.NoError(t, err)
	status := doJSON(t, http.MethodPost, srv.URL+"/api/babies/b1/entries", "mom@example.com", env, nil)
	require.Equal(t, http.StatusOK, status)

	var bundle models.ProfileBundle
	status = doJSON(t, http.MethodGet, srv.URL+"/api/profile", "mom@example.com", nil, &bundle)
	require.Equal(t, http.StatusOK, status)

	require.Equal(t, "mom@example.com", bundle.Profile.Email)
	require.Len(t, bundle.Babies, 1)
	require.Equal(t, "Luna", bundle.Babies[0].Baby.Name)
	require.Len(t, bundle.Babies[0].Diapers, 1)
	require.Equal(t, "system", bundle.Settings.Theme)
}

func TestProfileBundle_UnknownEmail(t *testing.T) {
	srv := newTestServer(t)

	status := doJSON(t, http.MethodGet, srv.URL+"/api/profile?email=nobody@example.com", "", nil, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProfile_PatchesFields(t *testing.T) {
	srv := newTestServer(t)
	ensureHousehold(t, srv.URL)

	name := "Alex"
	var updated models.UserProfile
	status := doJSON(t, http.MethodPut, srv.URL+"/api/profile", "mom@example.com",
		models.ProfilePatch{Name: &name}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Alex", updated.Name)
	require.Equal(t, "mom@example.com", updated.Email)
}

func TestUpdateSettings_DeepMerge(t *testing.T) {
	srv := newTestServer(t)
	profile, _ := ensureHousehold(t, srv.URL)

	enabled := false
	patch := models.SettingsPatch{
		Notifications: &models.NotificationSettingsPatch{Enabled: &enabled},
	}

	var updated models.AppSettings
	status := doJSON(t, http.MethodPut, srv.URL+"/api/settings?userId="+profile.ID, "", patch, &updated)
	require.Equal(t, http.StatusOK, status)

	require.False(t, updated.Notifications.Enabled)
	// Siblings of the patched field keep their defaults.
	require.True(t, updated.Notifications.FeedingReminders)
	require.Equal(t, "22:00", updated.Notifications.QuietHoursStart)
	require.Equal(t, "system", updated.Theme)
}

func TestInviteLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ensureHousehold(t, srv.URL)

	var created createInviteResponse
	status := doJSON(t, http.MethodPost, srv.URL+"/api/family/invites", "mom@example.com",
		createInviteRequest{Email: "granny@example.com", Role: "grandparent",
			Permissions: models.Permissions{View: true, Add: true}}, &created)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, created.Token)
	require.Len(t, created.ShareCode, 6)
	require.Equal(t, models.InvitePending, created.Member.Status)

	// Wrong share code is rejected.
	status = doJSON(t, http.MethodPost, srv.URL+"/api/family/invites/accept", "",
		acceptInviteRequest{Token: created.Token, Code: "wrong1"}, nil)
	require.Equal(t, http.StatusForbidden, status)

	var accepted models.FamilyMember
	status = doJSON(t, http.MethodPost, srv.URL+"/api/family/invites/accept", "",
		acceptInviteRequest{Token: created.Token, Code: created.ShareCode}, &accepted)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, models.InviteAccepted, accepted.Status)

	var members []models.FamilyMember
	status = doJSON(t, http.MethodGet, srv.URL+"/api/family", "mom@example.com", nil, &members)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, members, 1)
	require.Equal(t, "granny@example.com", members[0].Email)

	// Revoked invites cannot be accepted again.
	status = doJSON(t, http.MethodDelete, srv.URL+"/api/family/invites/"+created.Member.ID, "mom@example.com", nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = doJSON(t, http.MethodPost, srv.URL+"/api/family/invites/accept", "",
		acceptInviteRequest{Token: created.Token, Code: created.ShareCode}, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestAvatarUpload(t *testing.T) {
	srv := newTestServer(t)
	ensureHousehold(t, srv.URL)

	var resp avatarUploadResponse
	status := doJSON(t, http.MethodPost, srv.URL+"/api/babies/b1/avatar-upload", "mom@example.com", nil, &resp)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "avatars/b1", resp.Key)
	require.NotEmpty(t, resp.UploadURL)

	status = doJSON(t, http.MethodPut, srv.URL+"/api/babies/b1/avatar", "mom@example.com",
		setAvatarRequest{Key: resp.Key}, nil)
	require.Equal(t, http.StatusNoContent, status)

	var bundle models.ProfileBundle
	status = doJSON(t, http.MethodGet, srv.URL+"/api/profile", "mom@example.com", nil, &bundle)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "avatars/b1", bundle.Babies[0].Baby.AvatarURL)

	var dl map[string]string
	status = doJSON(t, http.MethodGet, srv.URL+"/api/babies/b1/avatar", "mom@example.com", nil, &dl)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "http://s3.test/get/avatars/b1", dl["url"])
}

func TestAvatarDownload_NoAvatarSet(t *testing.T) {
	srv := newTestServer(t)
	ensureHousehold(t, srv.URL)

	status := doJSON(t, http.MethodGet, srv.URL+"/api/babies/b1/avatar", "mom@example.com", nil, nil)
	require.Equal(t, http.StatusNotFound, status)
}
