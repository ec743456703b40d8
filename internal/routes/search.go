package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/catalog"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

// Search handles GET /search: one remote text search, then local filtering.
// Query params: q, kind (movie|tv), page, sort, strict (default true),
// anime (opt-in heuristic).
func Search(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params := r.URL.Query()

		q := params.Get("q")
		if catalog.IsBlank(q) {
			// blank query clears without touching the remote catalog
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
				"items": []model.MediaItem{}, "count": 0, "total_pages": 0, "page": 1,
			})
			return
		}

		kind := model.MediaKind(params.Get("kind"))
		if kind == "" {
			kind = model.KindMovie
		}
		if !kind.Valid() {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid kind", nil))
			return
		}
		sort, err := tmdb.ParseSortKey(params.Get("sort"))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid sort", err))
			return
		}
		strict := params.Get("strict") != "false" && params.Get("strict") != "0"
		anime := params.Get("anime") == "true" || params.Get("anime") == "1"

		ps := catalog.NewPageState()
		ps.SetPage(queryPage(r))

		mode := "strict"
		if !strict {
			mode = "fuzzy"
		}
		cacheKey := "search:" + string(kind) + ":" + string(sort) + ":" + mode +
			":anime:" + strconv.FormatBool(anime) + ":page:" + strconv.Itoa(ps.Page) + ":" + q
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}

		page, err := d.Catalog.Search(ctx, kind, q, ps.Page, sort)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("search failed", err))
			return
		}
		ps.SetTotal(page.TotalPages)

		items := page.Items
		if anime {
			items = catalog.ClassifyAnime(ctx, d.Catalog, items)
		}
		if strict {
			items = catalog.FilterStrict(items, q)
		} else {
			items = catalog.FilterFuzzy(items, q)
		}
		items = catalog.FilterPosters(items)

		resp := map[string]any{
			"items":       items,
			"count":       len(items),
			"total_pages": ps.TotalPages,
			"page":        ps.Page,
		}
		b, _ := json.Marshal(resp)
		_ = d.Cache.Set(ctx, cacheKey, string(b), d.SearchTTL)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// SearchMulti handles GET /search/multi: one text query across movies and
// shows at once, each result carrying its kind. Used for the navbar quick
// search.
func SearchMulti(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query().Get("q")
		if catalog.IsBlank(q) {
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
				"items": []model.MediaItem{}, "count": 0, "total_pages": 0, "page": 1,
			})
			return
		}
		ps := catalog.NewPageState()
		ps.SetPage(queryPage(r))
		page, err := d.Catalog.SearchMulti(ctx, q, ps.Page)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("search failed", err))
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
