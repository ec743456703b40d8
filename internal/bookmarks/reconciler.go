// Package bookmarks maintains the authoritative bookmarked set for a signed-in
// user against the document store. The store is the source of truth: a toggle
// only counts once the write has acknowledged.
package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/docstore"
)

// Reconciler reads and writes the bookmarked array inside a user's profile
// document.
type Reconciler struct {
	store docstore.Store
}

func New(store docstore.Store) *Reconciler { return &Reconciler{store: store} }

// entry pairs a normalized bookmark with whether it came from the legacy
// bare-id shape, where the kind is only a guess.
type entry struct {
	bm     model.Bookmark
	legacy bool
}

// listEntries reads the persisted array and normalizes both shapes: bare ids
// (legacy, kind assumed movie) and {id, type} records.
func (r *Reconciler) listEntries(ctx context.Context, uid string) ([]entry, error) {
	doc, err := r.store.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var fields struct {
		Bookmarked []json.RawMessage `json:"bookmarked"`
	}
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("bookmarks: decode document: %w", err)
	}
	out := make([]entry, 0, len(fields.Bookmarked))
	for _, raw := range fields.Bookmarked {
		var id int64
		legacy := json.Unmarshal(raw, &id) == nil
		var bm model.Bookmark
		if err := json.Unmarshal(raw, &bm); err != nil {
			return nil, fmt.Errorf("bookmarks: decode entry: %w", err)
		}
		out = append(out, entry{bm: bm, legacy: legacy})
	}
	return out, nil
}

// List returns the normalized bookmark list for a user. A missing document
// reads as an empty list.
func (r *Reconciler) List(ctx context.Context, uid string) ([]model.Bookmark, error) {
	entries, err := r.listEntries(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]model.Bookmark, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.bm)
	}
	return out, nil
}

// IsBookmarked checks membership by structural equality on (id, kind).
func IsBookmarked(list []model.Bookmark, id int64, kind model.MediaKind) bool {
	for _, b := range list {
		if b.ID == id && b.Kind == kind {
			return true
		}
	}
	return false
}

// Toggle flips membership of (id, kind) and writes the complement list back
// as a single field update. The returned state reflects the store only after
// the write acknowledges; on failure the persisted state is untouched and the
// caller keeps its pre-toggle view. Writing the normalized list also migrates
// any legacy bare-id entries to the typed shape.
func (r *Reconciler) Toggle(ctx context.Context, uid string, id int64, kind model.MediaKind) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("bookmarks: invalid kind %q", kind)
	}
	current, err := r.List(ctx, uid)
	if err != nil {
		return false, err
	}
	updated := make([]model.Bookmark, 0, len(current)+1)
	removed := false
	for _, b := range current {
		if b.ID == id && b.Kind == kind {
			removed = true
			continue
		}
		updated = append(updated, b)
	}
	if !removed {
		updated = append(updated, model.Bookmark{ID: id, Kind: kind})
	}
	if err := r.store.UpdateField(ctx, uid, "bookmarked", updated); err != nil {
		return false, err
	}
	return !removed, nil
}

// KindResolver probes the catalog for the kind of a bare id.
// *tmdb.Client satisfies it.
type KindResolver interface {
	ResolveKind(ctx context.Context, id int64) (model.MediaKind, error)
}

// ListResolved returns the bookmark list with legacy entries confirmed
// against the catalog: a detail probe as movie first, then as show. Entries
// that resolve as neither are silently excluded rather than failing the read.
func (r *Reconciler) ListResolved(ctx context.Context, uid string, resolver KindResolver) ([]model.Bookmark, error) {
	entries, err := r.listEntries(ctx, uid)
	if err != nil {
		return nil, err
	}
	out := make([]model.Bookmark, 0, len(entries))
	for _, e := range entries {
		if !e.legacy {
			out = append(out, e.bm)
			continue
		}
		kind, err := resolver.ResolveKind(ctx, e.bm.ID)
		if err != nil {
			log.Debug().Int64("id", e.bm.ID).Err(err).Msg("legacy bookmark did not resolve, excluding")
			continue
		}
		out = append(out, model.Bookmark{ID: e.bm.ID, Kind: kind})
	}
	return out, nil
}

// Buckets splits a list into the two display buckets.
func Buckets(list []model.Bookmark) (movies, shows []model.Bookmark) {
	for _, b := range list {
		if b.Kind == model.KindTV {
			shows = append(shows, b)
		} else {
			movies = append(movies, b)
		}
	}
	return movies, shows
}
