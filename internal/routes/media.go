package routes

import (
	"errors"
	"net/http"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/catalog"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

func pathKind(r *http.Request) (model.MediaKind, bool) {
	k := model.MediaKind(r.PathValue("kind"))
	return k, k.Valid()
}

// MediaDetails handles GET /media/{kind}/{id}.
func MediaDetails(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r)
		if !ok {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid kind", nil))
			return
		}
		id, ok := pathID(r)
		if !ok {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid id", nil))
			return
		}
		det, err := d.Catalog.Details(r.Context(), kind, id)
		if err != nil {
			if errors.Is(err, tmdb.ErrNotFound) {
				pkghttpx.WriteError(w, r, pkghttpx.NotFound("media not found", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("detail fetch failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, det)
	}
}

// MediaVideos handles GET /media/{kind}/{id}/videos.
func MediaVideos(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r)
		if !ok {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid kind", nil))
			return
		}
		id, ok := pathID(r)
		if !ok {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid id", nil))
			return
		}
		videos, err := d.Catalog.Videos(r.Context(), kind, id)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("video fetch failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"videos": videos})
	}
}

// MediaSimilar handles GET /media/{kind}/{id}/similar.
func MediaSimilar(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := pathKind(r)
		if !ok {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid kind", nil))
			return
		}
		id, ok := pathID(r)
		if !ok {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid id", nil))
			return
		}
		ps := catalog.NewPageState()
		ps.SetPage(queryPage(r))
		page, err := d.Catalog.Similar(r.Context(), kind, id, ps.Page)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("similar fetch failed", err))
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

// CollectionSearch handles GET /collections/search.
func CollectionSearch(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if catalog.IsBlank(q) {
			pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
				"collections": []tmdb.Collection{}, "total_pages": 0, "page": 1,
			})
			return
		}
		page := queryPage(r)
		cols, totalPages, err := d.Catalog.SearchCollections(r.Context(), q, page)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("collection search failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"collections": cols,
			"total_pages": totalPages,
			"page":        page,
		})
	}
}

// CollectionDetails handles GET /collections/{id}.
func CollectionDetails(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid id", nil))
			return
		}
		col, parts, err := d.Catalog.CollectionDetails(r.Context(), id)
		if err != nil {
			if errors.Is(err, tmdb.ErrNotFound) {
				pkghttpx.WriteError(w, r, pkghttpx.NotFound("collection not found", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.RemoteFetchFailed("collection fetch failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"collection": col,
			"parts":      catalog.FilterPosters(parts),
		})
	}
}
