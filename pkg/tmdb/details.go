package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
)

// Details is the flat detail-endpoint object, fetched with keywords and
// reviews appended so the anime heuristic and the detail page each need only
// one supplemental call per item.
type Details struct {
	ID                  int64         `json:"id"`
	Title               string        `json:"title"`
	Name                string        `json:"name"`
	Overview            string        `json:"overview"`
	PosterPath          string        `json:"poster_path"`
	Genres              []model.Genre `json:"genres"`
	OriginCountry       []string      `json:"origin_country"`
	ProductionCountries []struct {
		ISO31661 string `json:"iso_3166_1"`
	} `json:"production_countries"`
	Keywords keywordEnvelope `json:"keywords"`
	Reviews  reviewEnvelope  `json:"reviews"`
}

// Review is a user review attached to a detail response.
type Review struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type reviewEnvelope struct {
	Results []Review `json:"results"`
}

// AllReviews flattens the review envelope.
func (d Details) AllReviews() []Review { return d.Reviews.Results }

// Movie details nest keywords under "keywords", tv under "results".
type keywordEnvelope struct {
	Keywords []model.Keyword `json:"keywords"`
	Results  []model.Keyword `json:"results"`
}

// AllKeywords flattens the kind-dependent keyword envelope.
func (d Details) AllKeywords() []model.Keyword {
	if len(d.Keywords.Keywords) > 0 {
		return d.Keywords.Keywords
	}
	return d.Keywords.Results
}

// HasGenre reports whether the detail carries the given genre id.
func (d Details) HasGenre(id int) bool {
	for _, g := range d.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

// FromCountry reports whether the item originates in or was produced in the
// given ISO 3166-1 country.
func (d Details) FromCountry(iso string) bool {
	for _, c := range d.OriginCountry {
		if c == iso {
			return true
		}
	}
	for _, c := range d.ProductionCountries {
		if c.ISO31661 == iso {
			return true
		}
	}
	return false
}

// Details fetches /{kind}/{id}?append_to_response=keywords,reviews.
func (c *Client) Details(ctx context.Context, kind model.MediaKind, id int64) (Details, error) {
	var d Details
	if !kind.Valid() {
		return d, fmt.Errorf("invalid media kind %q", kind)
	}
	q := url.Values{}
	q.Set("append_to_response", "keywords,reviews")
	err := c.get(ctx, fmt.Sprintf("/%s/%d", kind, id), 0, q, &d)
	return d, err
}

// ResolveKind determines the media kind of a bare id by probing the detail
// endpoint as movie first, then as tv. Used for legacy bookmarks that were
// persisted without a kind.
func (c *Client) ResolveKind(ctx context.Context, id int64) (model.MediaKind, error) {
	if _, err := c.Details(ctx, model.KindMovie, id); err == nil {
		return model.KindMovie, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if _, err := c.Details(ctx, model.KindTV, id); err == nil {
		return model.KindTV, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	return "", ErrNotFound
}

// Video is a trailer/teaser reference attached to an item.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Videos fetches /{kind}/{id}/videos.
func (c *Client) Videos(ctx context.Context, kind model.MediaKind, id int64) ([]Video, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid media kind %q", kind)
	}
	var resp struct {
		Results []Video `json:"results"`
	}
	err := c.get(ctx, fmt.Sprintf("/%s/%d/videos", kind, id), 0, nil, &resp)
	return resp.Results, err
}

// SearchKeywords searches the keyword index by text.
func (c *Client) SearchKeywords(ctx context.Context, query string, page int) ([]model.Keyword, int, error) {
	q := url.Values{}
	q.Set("query", query)
	var resp struct {
		Results    []model.Keyword `json:"results"`
		TotalPages int             `json:"total_pages"`
	}
	if err := c.get(ctx, "/search/keyword", page, q, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Results, resp.TotalPages, nil
}

// Collection is a franchise grouping of movies.
type Collection struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Overview   string `json:"overview,omitempty"`
	PosterPath string `json:"poster_path,omitempty"`
}

// SearchCollections searches franchise collections by text.
func (c *Client) SearchCollections(ctx context.Context, query string, page int) ([]Collection, int, error) {
	q := url.Values{}
	q.Set("query", query)
	var resp struct {
		Results    []Collection `json:"results"`
		TotalPages int          `json:"total_pages"`
	}
	if err := c.get(ctx, "/search/collection", page, q, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Results, resp.TotalPages, nil
}

// CollectionDetails fetches a collection and its member movies.
func (c *Client) CollectionDetails(ctx context.Context, id int64) (Collection, []model.MediaItem, error) {
	var resp struct {
		Collection
		Parts []listItem `json:"parts"`
	}
	if err := c.get(ctx, fmt.Sprintf("/collection/%d", id), 0, nil, &resp); err != nil {
		return Collection{}, nil, err
	}
	items := make([]model.MediaItem, 0, len(resp.Parts))
	for _, p := range resp.Parts {
		items = append(items, p.toModel(model.KindMovie))
	}
	return resp.Collection, items, nil
}

// GenreList fetches the genre id/name table for a kind.
func (c *Client) GenreList(ctx context.Context, kind model.MediaKind) ([]model.Genre, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid media kind %q", kind)
	}
	var resp struct {
		Genres []model.Genre `json:"genres"`
	}
	err := c.get(ctx, "/genre/"+string(kind)+"/list", 0, nil, &resp)
	return resp.Genres, err
}
