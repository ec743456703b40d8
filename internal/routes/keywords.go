package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/catalog"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
)

// KeywordSearch handles GET /keywords/search: text search over the keyword
// index, fuzzy-narrowed locally. When nothing clears the fuzzy cutoff the
// raw batch is returned, since a keyword picker with zero suggestions is
// useless.
func KeywordSearch(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query().Get("q")
		if catalog.IsBlank(q) {
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
				"keywords": []model.Keyword{}, "total_pages": 0, "page": 1,
			})
			return
		}
		page := queryPage(r)
		kws, totalPages, err := d.Catalog.SearchKeywords(ctx, q, page)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("keyword search failed", err))
			return
		}
		filtered := catalog.FilterKeywords(kws, q)
		if len(filtered) == 0 {
			filtered = kws
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"keywords":    filtered,
			"total_pages": totalPages,
			"page":        page,
		})
	}
}

// KeywordDiscover handles POST /keywords/discover: one discover call that
// must match every selected keyword at once.
func KeywordDiscover(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type discoverReq struct {
			Kind     model.MediaKind `json:"kind"`
			Page     int             `json:"page"`
			Keywords []model.Keyword `json:"keywords"`
		}

		ctx := r.Context()
		var req discoverReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.Kind == "" {
			req.Kind = model.KindMovie
		}
		if !req.Kind.Valid() {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid kind", nil))
			return
		}

		set := catalog.NewKeywordSet(d.Catalog)
		for _, k := range req.Keywords {
			set.Add(k)
		}
		ps := catalog.NewPageState()
		ps.SetPage(req.Page)

		page, err := set.Search(ctx, req.Kind, ps.Page)
		if err != nil {
			if errors.Is(err, catalog.ErrNoKeywords) {
				pkghttpx.WriteError(w, r, pkghttpx.ValidationFailed("select at least one keyword first", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("keyword discover failed", err))
			return
		}
		ps.SetTotal(page.TotalPages)
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"items":       page.Items,
			"count":       len(page.Items),
			"total_pages": ps.TotalPages,
			"page":        ps.Page,
			"keywords":    set.Selected(),
		})
	}
}
