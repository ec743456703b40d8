package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
)

func newFakeCatalog(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-key")
	c.BaseURL = srv.URL
	return c
}

func TestSearchRequestShape(t *testing.T) {
	var got url.Values
	var gotPath string
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page":        2,
			"total_pages": 5,
			"results": []map[string]any{
				{"id": 603, "title": "The Matrix", "poster_path": "/m.jpg", "release_date": "1999-03-30", "genre_ids": []int{28, 878}},
				{"id": 1399, "name": "Game of Thrones", "first_air_date": "2011-04-17"},
			},
		})
	})

	page, err := c.Search(context.Background(), model.KindMovie, "matrix", 2, SortPopularityDesc)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotPath != "/search/movie" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	for k, want := range map[string]string{
		"query":         "matrix",
		"api_key":       "test-key",
		"language":      "en-US",
		"include_adult": "false",
		"page":          "2",
		"sort_by":       "popularity.desc",
	} {
		if got.Get(k) != want {
			t.Fatalf("param %s: expected %q, got %q", k, want, got.Get(k))
		}
	}

	if page.TotalPages != 5 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	// Movie shape.
	m := page.Items[0]
	if m.Title != "The Matrix" || m.Kind != model.KindMovie {
		t.Fatalf("unexpected item %+v", m)
	}
	if m.ReleaseDate == nil || m.ReleaseDate.Year() != 1999 {
		t.Fatalf("release date not parsed: %+v", m.ReleaseDate)
	}
	if len(m.Genres) != 2 || m.Genres[0].ID != 28 {
		t.Fatalf("genre ids not mapped: %v", m.Genres)
	}
	// TV shape falls back to name and first_air_date.
	tv := page.Items[1]
	if tv.Title != "Game of Thrones" {
		t.Fatalf("name fallback failed: %+v", tv)
	}
	if tv.ReleaseDate == nil || tv.ReleaseDate.Year() != 2011 {
		t.Fatalf("first_air_date not parsed: %+v", tv.ReleaseDate)
	}
}

func TestDiscoverCommaJoinsFilters(t *testing.T) {
	var got url.Values
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}, "total_pages": 0})
	})

	_, err := c.Discover(context.Background(), model.KindTV, DiscoverFilters{
		Genres:    []int64{16, 18},
		Keywords:  []int64{210024},
		Companies: []int64{2251},
	}, 1)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got.Get("with_genres") != "16,18" {
		t.Fatalf("with_genres: %q", got.Get("with_genres"))
	}
	if got.Get("with_keywords") != "210024" {
		t.Fatalf("with_keywords: %q", got.Get("with_keywords"))
	}
	if got.Get("with_companies") != "2251" {
		t.Fatalf("with_companies: %q", got.Get("with_companies"))
	}
	// Sort defaults when unset.
	if got.Get("sort_by") != string(SortPopularityDesc) {
		t.Fatalf("sort_by: %q", got.Get("sort_by"))
	}
}

func TestTrendingRequestShape(t *testing.T) {
	var gotPath string
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_pages": 3,
			"results": []map[string]any{
				{"id": 603, "title": "The Matrix", "poster_path": "/m.jpg"},
			},
		})
	})

	page, err := c.Trending(context.Background(), model.KindTV, 1)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if gotPath != "/trending/tv/week" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if page.TotalPages != 3 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].Kind != model.KindTV {
		t.Fatalf("kind not carried: %+v", page.Items[0])
	}

	if _, err := c.Trending(context.Background(), "podcast", 1); err == nil {
		t.Fatal("expected invalid kind to fail")
	}
}

func TestDetailsAppendsKeywordsAndReviews(t *testing.T) {
	var got url.Values
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       603,
			"title":    "The Matrix",
			"keywords": map[string]any{"keywords": []map[string]any{{"id": 1, "name": "cyberpunk"}}},
			"reviews": map[string]any{"results": []map[string]any{
				{"id": "r1", "author": "neo", "content": "whoa", "created_at": "2020-01-01T00:00:00Z"},
			}},
		})
	})

	d, err := c.Details(context.Background(), model.KindMovie, 603)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if got.Get("append_to_response") != "keywords,reviews" {
		t.Fatalf("append_to_response: %q", got.Get("append_to_response"))
	}
	if len(d.AllKeywords()) != 1 {
		t.Fatalf("keywords not decoded: %+v", d.Keywords)
	}
	reviews := d.AllReviews()
	if len(reviews) != 1 || reviews[0].Author != "neo" || reviews[0].Content != "whoa" {
		t.Fatalf("reviews not decoded: %+v", reviews)
	}
}

func TestNotFound(t *testing.T) {
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.Details(context.Background(), model.KindMovie, 999999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatusError(t *testing.T) {
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := c.Search(context.Background(), model.KindMovie, "x", 1, "")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusTooManyRequests {
		t.Fatalf("expected StatusError 429, got %v", err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := New("")
	if _, err := c.Search(context.Background(), model.KindMovie, "x", 1, ""); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestResolveKindProbesMovieThenTV(t *testing.T) {
	var paths []string
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/movie/1399" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1399, "name": "Game of Thrones"})
	})

	kind, err := c.ResolveKind(context.Background(), 1399)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if kind != model.KindTV {
		t.Fatalf("expected tv, got %q", kind)
	}
	if len(paths) != 2 || paths[0] != "/movie/1399" || paths[1] != "/tv/1399" {
		t.Fatalf("unexpected probe order: %v", paths)
	}
}

func TestSearchMultiDropsPeople(t *testing.T) {
	c := newFakeCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_pages": 1,
			"results": []map[string]any{
				{"id": 1, "title": "A Movie", "media_type": "movie"},
				{"id": 2, "name": "A Person", "media_type": "person"},
				{"id": 3, "name": "A Show", "media_type": "tv"},
			},
		})
	})
	page, err := c.SearchMulti(context.Background(), "a", 1)
	if err != nil {
		t.Fatalf("search multi: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected person dropped, got %v", page.Items)
	}
	if page.Items[0].Kind != model.KindMovie || page.Items[1].Kind != model.KindTV {
		t.Fatalf("kinds not carried from media_type: %v", page.Items)
	}
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	if err != nil || k != SortPopularityDesc {
		t.Fatalf("empty should default: %v %v", k, err)
	}
	if _, err := ParseSortKey("release_date.desc"); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
	if _, err := ParseSortKey("bogus"); err == nil {
		t.Fatal("expected invalid key to fail")
	}
}

func TestDetailsKeywordEnvelope(t *testing.T) {
	movie := Details{}
	movie.Keywords.Keywords = []model.Keyword{{ID: 1, Name: "anime"}}
	if len(movie.AllKeywords()) != 1 {
		t.Fatal("movie envelope not flattened")
	}
	tv := Details{}
	tv.Keywords.Results = []model.Keyword{{ID: 2, Name: "anime"}}
	if len(tv.AllKeywords()) != 1 {
		t.Fatal("tv envelope not flattened")
	}
}
