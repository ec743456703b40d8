package routes

import (
	"errors"
	"net/http"

	"github.com/Nitesh-orv-5149/PopCornPics/pkg/docstore"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
	pkgrequestctx "github.com/Nitesh-orv-5149/PopCornPics/pkg/requestctx"
)

// Profile handles GET /profile.
func Profile(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid := pkgrequestctx.UserID(ctx)
		p, err := d.Users.Profile(ctx, uid)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				pkghttpx.WriteError(w, r, pkghttpx.NotFound("profile not found", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to load profile", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, p)
	}
}

// ThemeToggle handles POST /profile/theme: flips light/dark, write-through.
func ThemeToggle(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid := pkgrequestctx.UserID(ctx)
		next, err := d.Users.ToggleTheme(ctx, uid)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.WriteFailed("theme update failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"theme": next})
	}
}
