package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
)

// fuzzyThreshold mirrors the 0.5 similarity cutoff the search screen has
// always used: an edit distance above half the query length is a miss.
const fuzzyThreshold = 0.5

// FilterStrict keeps items where every lowercase whitespace-split term of q
// is a substring of the title or the overview. An empty term list matches
// nothing.
func FilterStrict(items []model.MediaItem, q string) []model.MediaItem {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return nil
	}
	out := make([]model.MediaItem, 0, len(items))
	for _, it := range items {
		title := strings.ToLower(it.Title)
		overview := strings.ToLower(it.Overview)
		ok := true
		for _, t := range terms {
			if !strings.Contains(title, t) && !strings.Contains(overview, t) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, it)
		}
	}
	return out
}

// FilterFuzzy keeps items whose title or overview approximately matches q.
// Zero survivors yields an empty result, not the unfiltered batch.
func FilterFuzzy(items []model.MediaItem, q string) []model.MediaItem {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return nil
	}
	out := make([]model.MediaItem, 0, len(items))
	for _, it := range items {
		if fuzzyMatches(q, it.Title) || fuzzyMatches(q, it.Overview) {
			out = append(out, it)
		}
	}
	return out
}

// fuzzyMatches ranks q against each token of text and against the text as a
// whole; a rank within the distance budget counts as a match.
func fuzzyMatches(q, text string) bool {
	if text == "" {
		return false
	}
	budget := int(fuzzyThreshold * float64(len(q)))
	text = strings.ToLower(text)
	if r := fuzzy.RankMatch(q, text); r >= 0 && r <= budget {
		return true
	}
	for _, tok := range strings.Fields(text) {
		if r := fuzzy.RankMatch(q, tok); r >= 0 && r <= budget {
			return true
		}
	}
	return false
}

// IsBlank reports whether a query is empty or whitespace-only; blank queries
// clear the result set without a remote call.
func IsBlank(q string) bool { return strings.TrimSpace(q) == "" }

// FilterKeywords fuzzy-matches keyword names against q. Callers that prefer
// the full batch over an empty result apply that fallback themselves.
func FilterKeywords(kws []model.Keyword, q string) []model.Keyword {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return nil
	}
	out := make([]model.Keyword, 0, len(kws))
	for _, k := range kws {
		if fuzzyMatches(q, k.Name) {
			out = append(out, k)
		}
	}
	return out
}

// FilterPosters drops items without a poster reference. This is display-layer
// policy, kept separate from the match filters so data-only callers can skip
// it.
func FilterPosters(items []model.MediaItem) []model.MediaItem {
	out := make([]model.MediaItem, 0, len(items))
	for _, it := range items {
		if it.PosterPath != "" {
			out = append(out, it)
		}
	}
	return out
}
