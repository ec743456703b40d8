package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/catalog"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

func parseIDList(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// Discover handles GET /discover: structured-criteria browsing by genres
// and/or companies. Poster-less items are dropped before display.
func Discover(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params := r.URL.Query()

		kind := model.MediaKind(params.Get("kind"))
		if kind == "" {
			kind = model.KindMovie
		}
		if !kind.Valid() {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid kind", nil))
			return
		}
		genres, err := parseIDList(params.Get("genres"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid genres", err))
			return
		}
		companies, err := parseIDList(params.Get("companies"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid companies", err))
			return
		}
		if len(genres) == 0 && len(companies) == 0 {
			pkghttpx.WriteError(w, r, pkghttpx.ValidationFailed("select at least one genre or company", nil))
			return
		}
		sort, err := tmdb.ParseSortKey(params.Get("sort"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid sort", err))
			return
		}

		ps := catalog.NewPageState()
		ps.SetPage(queryPage(r))

		page, err := d.Catalog.Discover(ctx, kind, tmdb.DiscoverFilters{
			Genres:    genres,
			Companies: companies,
			SortBy:    sort,
		}, ps.Page)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("discover failed", err))
			return
		}
		ps.SetTotal(page.TotalPages)
		items := catalog.FilterPosters(page.Items)
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"items":       items,
			"count":       len(items),
			"total_pages": ps.TotalPages,
			"page":        ps.Page,
		})
	}
}

// Genres handles GET /genres: the id/name table per kind, cached for a day
// and warmed at startup by the background job.
func Genres(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind := model.MediaKind(r.URL.Query().Get("kind"))
		if kind == "" {
			kind = model.KindMovie
		}
		if !kind.Valid() {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid kind", nil))
			return
		}
		cacheKey := "genres:" + string(kind)
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		genres, err := d.Catalog.GenreList(ctx, kind)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("genre list failed", err))
			return
		}
		b, _ := json.Marshal(map[string]any{"genres": genres})
		_ = d.Cache.Set(ctx, cacheKey, string(b), 24*time.Hour)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
