package routes

import (
	"encoding/json"
	"net/http"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/bookmarks"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
	pkgrequestctx "github.com/Nitesh-orv-5149/PopCornPics/pkg/requestctx"
)

// Bookmarks handles GET /bookmarks: the normalized list split into the two
// display buckets. Legacy bare-id entries are confirmed against the catalog;
// ids that resolve as neither movie nor show are dropped silently.
func Bookmarks(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid := pkgrequestctx.UserID(ctx)
		list, err := d.Bookmarks.ListResolved(ctx, uid, d.Catalog)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list bookmarks", err))
			return
		}
		movies, shows := bookmarks.Buckets(list)
		if movies == nil {
			movies = []model.Bookmark{}
		}
		if shows == nil {
			shows = []model.Bookmark{}
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"movies": movies,
			"shows":  shows,
			"count":  len(list),
		})
	}
}

// BookmarkToggle handles POST /bookmarks/toggle. The reported state only
// flips once the store write has acknowledged; on failure the persisted set
// is untouched and the caller keeps its pre-toggle view.
func BookmarkToggle(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type toggleReq struct {
			ID   int64           `json:"id"`
			Kind model.MediaKind `json:"type"`
		}
		ctx := r.Context()
		uid := pkgrequestctx.UserID(ctx)

		var req toggleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.ID <= 0 || !req.Kind.Valid() {
			pkghttpx.WriteError(w, r, pkghttpx.ValidationFailed("id and type required", nil))
			return
		}
		bookmarked, err := d.Bookmarks.Toggle(ctx, uid, req.ID, req.Kind)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.WriteFailed("bookmark update failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"bookmarked": bookmarked,
			"id":         req.ID,
			"type":       req.Kind,
		})
	}
}
