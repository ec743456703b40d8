package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/bookmarks"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/server"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/users"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/cache"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/docstore"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/signer"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	profiles := docstore.NewMemory()
	identities := docstore.NewMemory()
	sessions := signer.NewHMAC([]byte("test-secret"))
	sd := deps.ServerDeps{
		Users:     users.New(profiles, identities, sessions),
		Bookmarks: bookmarks.New(profiles),
		Cache:     cache.NewInMemory(),
		Sessions:  sessions,
		SearchTTL: time.Minute,
		Name:      "popcornpics-test",
		StartedAt: time.Now(),
	}
	return server.New(sd, nil).Router()
}

func postJSON(t *testing.T, r http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
}

func TestAuthGate(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", w.Code)
	}
}

func TestSignUpVerifySignInFlow(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/auth/signup", "", map[string]string{
		"email": "a@b.test", "password": "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var signup struct {
		VerificationToken string `json:"verification_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &signup); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if signup.VerificationToken == "" {
		t.Fatal("expected a verification token")
	}

	// Sign-in is gated until the email is verified.
	w = postJSON(t, r, "/auth/signin", "", map[string]string{
		"email": "a@b.test", "password": "hunter22",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("pre-verify signin: expected 401, got %d", w.Code)
	}

	w = postJSON(t, r, "/auth/verify", "", map[string]string{
		"email": "a@b.test", "token": signup.VerificationToken,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/auth/signin", "", map[string]string{
		"email": "a@b.test", "password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var signin struct {
		Token   string `json:"token"`
		Profile struct {
			Email string `json:"email"`
			Theme string `json:"theme"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &signin); err != nil {
		t.Fatalf("decode signin response: %v", err)
	}
	if signin.Token == "" {
		t.Fatal("expected a session token")
	}
	if signin.Profile.Email != "a@b.test" {
		t.Fatalf("unexpected profile email %q", signin.Profile.Email)
	}

	// The session token opens the gated routes.
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signin.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	w = postJSON(t, r, "/profile/theme", signin.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("theme toggle: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var theme struct {
		Theme string `json:"theme"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &theme); err != nil {
		t.Fatalf("decode theme response: %v", err)
	}
	if theme.Theme == signin.Profile.Theme {
		t.Fatalf("theme did not flip, still %q", theme.Theme)
	}
}

func TestBookmarkToggleRoute(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/auth/signup", "", map[string]string{
		"email": "bm@b.test", "password": "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", w.Code)
	}
	var signup struct {
		VerificationToken string `json:"verification_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &signup); err != nil {
		t.Fatal(err)
	}
	postJSON(t, r, "/auth/verify", "", map[string]string{"email": "bm@b.test", "token": signup.VerificationToken})
	w = postJSON(t, r, "/auth/signin", "", map[string]string{"email": "bm@b.test", "password": "hunter22"})
	var signin struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &signin); err != nil {
		t.Fatal(err)
	}

	w = postJSON(t, r, "/bookmarks/toggle", signin.Token, map[string]any{"id": 550, "type": "movie"})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var toggle struct {
		Bookmarked bool `json:"bookmarked"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &toggle); err != nil {
		t.Fatal(err)
	}
	if !toggle.Bookmarked {
		t.Fatal("expected first toggle to bookmark")
	}

	w = postJSON(t, r, "/bookmarks/toggle", signin.Token, map[string]any{"id": 550, "type": "movie"})
	if err := json.Unmarshal(w.Body.Bytes(), &toggle); err != nil {
		t.Fatal(err)
	}
	if toggle.Bookmarked {
		t.Fatal("expected second toggle to remove the bookmark")
	}

	// Missing id or kind is rejected before any write.
	w = postJSON(t, r, "/bookmarks/toggle", signin.Token, map[string]any{"id": 0, "type": "movie"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for id 0, got %d", w.Code)
	}
	w = postJSON(t, r, "/bookmarks/toggle", signin.Token, map[string]any{"id": 1, "type": "podcast"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad kind, got %d", w.Code)
	}
}

func TestTrendingRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/trending/tv/week" {
			t.Errorf("unexpected upstream path %q", req.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_pages": 1,
			"results": []map[string]any{
				{"id": 1399, "name": "Game of Thrones", "poster_path": "/got.jpg"},
				{"id": 2, "name": "No Poster"},
			},
		})
	}))
	defer srv.Close()
	catalog := tmdb.New("test-key")
	catalog.BaseURL = srv.URL

	sessions := signer.NewHMAC([]byte("test-secret"))
	sd := deps.ServerDeps{
		Catalog:   catalog,
		Cache:     cache.NewInMemory(),
		Sessions:  sessions,
		SearchTTL: time.Minute,
		Name:      "popcornpics-test",
		StartedAt: time.Now(),
	}
	r := server.New(sd, nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/trending?kind=tv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	// The poster-less item is dropped like on every other list surface.
	if resp.Count != 1 || len(resp.Items) != 1 || resp.Items[0].ID != 1399 {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestSearchMultiBlankQuery(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/search/multi?q=%20", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 {
		t.Fatalf("expected empty result, got %s", w.Body.String())
	}
}

func TestSearchBlankQuery(t *testing.T) {
	// A blank query short-circuits without touching the remote catalog, so a
	// nil client must not be dereferenced.
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/search?q=%20%20", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Items []json.RawMessage `json:"items"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 || len(resp.Items) != 0 {
		t.Fatalf("expected empty result, got count=%d items=%d", resp.Count, len(resp.Items))
	}
}
