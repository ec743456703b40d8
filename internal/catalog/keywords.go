package catalog

import (
	"context"
	"errors"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

// ErrNoKeywords is the local validation error for a combination search with
// nothing selected; no remote call is attempted.
var ErrNoKeywords = errors.New("no keywords selected")

// KeywordSet accumulates selected keywords in insertion order, unique by id,
// and issues one AND-combination discover query for the whole set.
type KeywordSet struct {
	client   *tmdb.Client
	selected []model.Keyword
}

func NewKeywordSet(client *tmdb.Client) *KeywordSet {
	return &KeywordSet{client: client}
}

// Add appends a keyword unless its id is already present.
func (s *KeywordSet) Add(k model.Keyword) {
	for _, sel := range s.selected {
		if sel.ID == k.ID {
			return
		}
	}
	s.selected = append(s.selected, k)
}

// Remove drops the keyword with the given id, if present.
func (s *KeywordSet) Remove(id int64) {
	for i, sel := range s.selected {
		if sel.ID == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
}

func (s *KeywordSet) Clear() { s.selected = nil }

// Selected returns the keywords in insertion order.
func (s *KeywordSet) Selected() []model.Keyword {
	out := make([]model.Keyword, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *KeywordSet) Len() int { return len(s.selected) }

// Search issues a single discover call whose keyword filter carries every
// selected id comma-joined, which the catalog treats as AND. An empty set is
// a local validation error.
func (s *KeywordSet) Search(ctx context.Context, kind model.MediaKind, page int) (tmdb.Page, error) {
	if len(s.selected) == 0 {
		return tmdb.Page{}, ErrNoKeywords
	}
	ids := make([]int64, 0, len(s.selected))
	for _, sel := range s.selected {
		ids = append(ids, sel.ID)
	}
	return s.client.Discover(ctx, kind, tmdb.DiscoverFilters{
		Keywords: ids,
		SortBy:   tmdb.SortPopularityDesc,
	}, page)
}
