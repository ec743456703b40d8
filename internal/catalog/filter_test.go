package catalog

import (
	"testing"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
)

func mediaItems() []model.MediaItem {
	return []model.MediaItem{
		{ID: 603, Kind: model.KindMovie, Title: "The Matrix", Overview: "A computer hacker learns the truth.", PosterPath: "/matrix.jpg"},
		{ID: 604, Kind: model.KindMovie, Title: "The Matrix Reloaded", Overview: "Neo and the rebel leaders.", PosterPath: "/reloaded.jpg"},
		{ID: 27205, Kind: model.KindMovie, Title: "Inception", Overview: "A thief who steals secrets through dreams.", PosterPath: "/inception.jpg"},
		{ID: 500, Kind: model.KindMovie, Title: "Reservoir Dogs", Overview: "A botched robbery.", PosterPath: ""},
	}
}

func TestFilterStrictAllTermsMustMatch(t *testing.T) {
	items := mediaItems()

	got := FilterStrict(items, "the hacker")
	if len(got) != 1 || got[0].ID != 603 {
		t.Fatalf("expected only The Matrix, got %v", got)
	}

	// One non-matching term rejects the item.
	got = FilterStrict(items, "the matrix 2")
	if len(got) != 0 {
		t.Fatalf("expected no matches for 'the matrix 2', got %v", got)
	}

	// Terms can match across title and overview.
	got = FilterStrict(items, "matrix")
	if len(got) != 2 {
		t.Fatalf("expected both Matrix entries, got %v", got)
	}

	// Case-insensitive.
	got = FilterStrict(items, "INCEPTION")
	if len(got) != 1 || got[0].ID != 27205 {
		t.Fatalf("expected Inception, got %v", got)
	}
}

func TestFilterStrictEmptyQuery(t *testing.T) {
	if got := FilterStrict(mediaItems(), "   "); len(got) != 0 {
		t.Fatalf("blank query should match nothing, got %v", got)
	}
}

func TestFilterFuzzyTolerance(t *testing.T) {
	items := mediaItems()

	// Exact token still matches under fuzzy.
	got := FilterFuzzy(items, "matrix")
	if len(got) != 2 {
		t.Fatalf("expected both Matrix entries, got %v", got)
	}

	// A near miss within half the query length passes.
	got = FilterFuzzy(items, "incepton")
	if len(got) != 1 || got[0].ID != 27205 {
		t.Fatalf("expected Inception for near-miss query, got %v", got)
	}

	// Zero survivors is an empty result, never the raw batch.
	got = FilterFuzzy(items, "zzzzzzzzz")
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestFilterKeywords(t *testing.T) {
	kws := []model.Keyword{
		{ID: 1, Name: "time travel"},
		{ID: 2, Name: "cyberpunk"},
		{ID: 3, Name: "heist"},
	}
	got := FilterKeywords(kws, "cyberpunk")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected cyberpunk, got %v", got)
	}
	// No fallback here: an empty survivor set stays empty. Callers that want
	// the raw batch instead apply that themselves.
	if got := FilterKeywords(kws, "qqqqqqq"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestFilterPosters(t *testing.T) {
	got := FilterPosters(mediaItems())
	if len(got) != 3 {
		t.Fatalf("expected 3 items with posters, got %d", len(got))
	}
	for _, it := range got {
		if it.PosterPath == "" {
			t.Fatalf("item %d slipped through without a poster", it.ID)
		}
	}
}

func TestIsBlank(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n  "} {
		if !IsBlank(q) {
			t.Fatalf("expected %q to be blank", q)
		}
	}
	if IsBlank(" x ") {
		t.Fatal("expected ' x ' not to be blank")
	}
}
