package routes

import (
	"net/http"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/catalog"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
)

// Trending handles GET /trending: the week's trending items per kind, feeding
// the home carousel. Poster-less items are dropped before display.
func Trending(d pkgdeps.ServerDeps) http.HandlerFunc {
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
		ps := catalog.NewPageState()
		ps.SetPage(queryPage(r))
		page, err := d.Catalog.Trending(ctx, kind, ps.Page)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("trending fetch failed", err))
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
