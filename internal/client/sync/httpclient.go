package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"babysteps/internal/common"
	"babysteps/internal/models"
)

// HTTPClient talks JSON to the babysteps server API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, http: hc}
}

// doJSON issues one request and decodes the JSON response into out (when out
// is non-nil). 404 maps to common.ErrorNotFound so callers can classify it.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, email string, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set(common.IdentityHeaderName, email)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return common.ErrorNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) EnsureUser(ctx context.Context, email string) (*models.UserProfile, error) {
	var u models.UserProfile
	body := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/ensure", nil, email, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) EnsureBaby(ctx context.Context, email string, baby models.Baby) error {
	return c.doJSON(ctx, http.MethodPost, "/api/babies", nil, email, baby, nil)
}

func (c *HTTPClient) CreateEntry(ctx context.Context, email string, env models.Envelope) error {
	path := "/api/babies/" + env.BabyID + "/entries"
	return c.doJSON(ctx, http.MethodPost, path, nil, email, env, nil)
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, email string, entryID string, env models.Envelope) error {
	path := "/api/babies/" + env.BabyID + "/entries/" + entryID
	q := url.Values{"type": {string(env.Kind)}, "email": {email}}
	return c.doJSON(ctx, http.MethodPut, path, q, email, env, nil)
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, email, babyID, entryID string, kind models.EntryKind) error {
	path := "/api/babies/" + babyID + "/entries/" + entryID
	q := url.Values{"type": {string(kind)}, "email": {email}}
	return c.doJSON(ctx, http.MethodDelete, path, q, email, nil, nil)
}

func (c *HTTPClient) FetchProfile(ctx context.Context, email string) (*models.ProfileBundle, error) {
	var b models.ProfileBundle
	q := url.Values{"email": {email}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/profile", q, email, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) error {
	return c.doJSON(ctx, http.MethodPut, "/api/profile", nil, email, patch, nil)
}

func (c *HTTPClient) FetchSettings(ctx context.Context, userID string) (*models.AppSettings, error) {
	var s models.AppSettings
	q := url.Values{"userId": {userID}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/settings", q, "", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) error {
	q := url.Values{"userId": {userID}}
	return c.doJSON(ctx, http.MethodPut, "/api/settings", q, "", patch, nil)
}

func (c *HTTPClient) FetchToday(ctx context.Context, email, babyID string) (*models.TodayView, error) {
	var v models.TodayView
	path := "/api/babies/" + babyID + "/live"
	q := url.Values{"email": {email}}
	if err := c.doJSON(ctx, http.MethodGet, path, q, email, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
