package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// MediaKind distinguishes the two catalog surfaces.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
)

// Valid reports whether k is one of the two known kinds.
func (k MediaKind) Valid() bool { return k == KindMovie || k == KindTV }

// GenreAnimation is TMDb's genre id for animated content.
const GenreAnimation = 16

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MediaItem is a read-only view of a catalog entry. Items are never mutated
// locally, only cached per query.
type MediaItem struct {
	ID          int64      `json:"id"`
	Kind        MediaKind  `json:"kind"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview,omitempty"`
	PosterPath  string     `json:"poster_path,omitempty"`
	VoteAverage *float64   `json:"vote_average,omitempty"`
	Popularity  float64    `json:"popularity"`
	Genres      []Genre    `json:"genres,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
}

// Keyword is a filter token from the catalog's keyword index.
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Bookmark is a user's saved reference to one media item.
// At most one bookmark per (ID, Kind) pair per user.
type Bookmark struct {
	ID   int64     `json:"id"`
	Kind MediaKind `json:"type"`
}

// UnmarshalJSON accepts both the current {id, type} shape and the legacy
// bare-id shape. Bare ids default to kind movie.
func (b *Bookmark) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		b.ID = id
		b.Kind = KindMovie
		return nil
	}
	type alias Bookmark
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("bookmark: %w", err)
	}
	if a.Kind == "" {
		a.Kind = KindMovie
	}
	*b = Bookmark(a)
	return nil
}

// Theme preferences.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UserProfile is the per-user document mirrored from the store. Local copies
// are caches; every mutation writes through before it counts.
type UserProfile struct {
	UID          string     `json:"uid"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Theme        string     `json:"theme"`
	Bookmarked   []Bookmark `json:"bookmarked"`
	Subscription string     `json:"subscription,omitempty"`
	Verified     bool       `json:"verified"`
	CreatedAt    time.Time  `json:"createdAt"`
}
