package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

// animeKeywords are the explicit keyword names that mark an item as anime
// even without a Japanese origin country.
var animeKeywords = map[string]struct{}{
	"anime":              {},
	"japan animation":    {},
	"japanese animation": {},
}

// animeDetailConcurrency bounds the per-page detail fan-out. Result pages
// carry at most 20 items, so the batch finishes in a few rounds.
const animeDetailConcurrency = 8

// Detailer is the single catalog method the classifier needs.
// *tmdb.Client satisfies it.
type Detailer interface {
	Details(ctx context.Context, kind model.MediaKind, id int64) (tmdb.Details, error)
}

// ClassifyAnime keeps the items that qualify as anime: animation genre AND
// (Japanese origin OR an explicit anime keyword). Each item costs one
// supplemental detail fetch; fetches run concurrently but bounded. A failed
// fetch marks that one item non-matching, it never aborts the batch. This is
// a best-effort heuristic, not an authoritative taxonomy.
func ClassifyAnime(ctx context.Context, d Detailer, items []model.MediaItem) []model.MediaItem {
	if len(items) == 0 {
		return nil
	}
	matched := make([]bool, len(items))
	p := pool.New().WithMaxGoroutines(animeDetailConcurrency)
	for i, it := range items {
		i, it := i, it
		p.Go(func() {
			det, err := retry.DoWithData(func() (tmdb.Details, error) {
				return d.Details(ctx, it.Kind, it.ID)
			}, retry.Context(ctx), retry.Attempts(2), retry.Delay(200*time.Millisecond), retry.LastErrorOnly(true))
			if err != nil {
				return
			}
			matched[i] = isAnime(det)
		})
	}
	p.Wait()

	out := make([]model.MediaItem, 0, len(items))
	for i, it := range items {
		if matched[i] {
			out = append(out, it)
		}
	}
	return out
}

func isAnime(d tmdb.Details) bool {
	if !d.HasGenre(model.GenreAnimation) {
		return false
	}
	if d.FromCountry("JP") {
		return true
	}
	for _, k := range d.AllKeywords() {
		if _, ok := animeKeywords[strings.ToLower(k.Name)]; ok {
			return true
		}
	}
	return false
}
