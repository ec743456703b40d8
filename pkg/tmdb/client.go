package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
)

// SortKey enumerates the orderings the catalog accepts.
type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortPopularityAsc   SortKey = "popularity.asc"
	SortRatingDesc      SortKey = "vote_average.desc"
	SortRatingAsc       SortKey = "vote_average.asc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortReleaseDateAsc  SortKey = "release_date.asc"
)

var sortKeys = map[SortKey]struct{}{
	SortPopularityDesc: {}, SortPopularityAsc: {},
	SortRatingDesc: {}, SortRatingAsc: {},
	SortReleaseDateDesc: {}, SortReleaseDateAsc: {},
}

// ParseSortKey validates a raw sort parameter. Empty defaults to
// popularity descending.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortPopularityDesc, nil
	}
	k := SortKey(s)
	if _, ok := sortKeys[k]; !ok {
		return "", fmt.Errorf("invalid sort key %q", s)
	}
	return k, nil
}

// ErrNotFound is returned for 404 responses, e.g. when probing a legacy
// bookmark id against the wrong media kind.
var ErrNotFound = errors.New("tmdb: not found")

// StatusError carries a non-2xx response code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("tmdb status %d", e.Code) }

// Client talks to the TMDb v3 API. Requests are throttled client-side so a
// burst of per-item detail fetches cannot trip the remote rate limit.
type Client struct {
	APIKey   string
	BaseURL  string
	Language string
	Client   *http.Client

	limiter *rate.Limiter
}

func New(apiKey string) *Client {
	return &Client{
		APIKey:   apiKey,
		BaseURL:  "https://api.themoviedb.org/3",
		Language: "en-US",
		Client:   &http.Client{Timeout: 15 * time.Second},
		// TMDb allows ~50 req/s; stay under it
		limiter: rate.NewLimiter(rate.Limit(40), 40),
	}
}

// Page is the normalized list-endpoint envelope.
type Page struct {
	Items      []model.MediaItem `json:"items"`
	TotalPages int               `json:"total_pages"`
}

type listResp struct {
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Results    []listItem `json:"results"`
}

type listItem struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	Overview     string   `json:"overview"`
	PosterPath   string   `json:"poster_path"`
	VoteAverage  *float64 `json:"vote_average"`
	Popularity   float64  `json:"popularity"`
	ReleaseDate  string   `json:"release_date"`
	FirstAirDate string   `json:"first_air_date"`
	GenreIDs     []int    `json:"genre_ids"`
	MediaType    string   `json:"media_type"`
}

func (it listItem) toModel(kind model.MediaKind) model.MediaItem {
	m := model.MediaItem{
		ID:          it.ID,
		Kind:        kind,
		Title:       it.Title,
		Overview:    it.Overview,
		PosterPath:  it.PosterPath,
		VoteAverage: it.VoteAverage,
		Popularity:  it.Popularity,
	}
	if m.Title == "" {
		m.Title = it.Name
	}
	for _, id := range it.GenreIDs {
		m.Genres = append(m.Genres, model.Genre{ID: id})
	}
	raw := it.ReleaseDate
	if raw == "" {
		raw = it.FirstAirDate
	}
	if raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			m.ReleaseDate = &d
		}
	}
	return m
}

// Search issues one text search against /search/{kind}.
func (c *Client) Search(ctx context.Context, kind model.MediaKind, query string, page int, sort SortKey) (Page, error) {
	if !kind.Valid() {
		return Page{}, fmt.Errorf("invalid media kind %q", kind)
	}
	q := url.Values{}
	q.Set("query", query)
	if sort != "" {
		q.Set("sort_by", string(sort))
	}
	var lr listResp
	if err := c.get(ctx, "/search/"+string(kind), page, q, &lr); err != nil {
		return Page{}, err
	}
	return c.toPage(kind, lr), nil
}

// DiscoverFilters are the structured criteria for /discover/{kind}.
// Multi-valued filters are comma-joined, which TMDb treats as AND.
type DiscoverFilters struct {
	Genres    []int64
	Keywords  []int64
	Companies []int64
	SortBy    SortKey
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// Discover issues one structured-criteria query against /discover/{kind}.
func (c *Client) Discover(ctx context.Context, kind model.MediaKind, f DiscoverFilters, page int) (Page, error) {
	if !kind.Valid() {
		return Page{}, fmt.Errorf("invalid media kind %q", kind)
	}
	q := url.Values{}
	if len(f.Genres) > 0 {
		q.Set("with_genres", joinIDs(f.Genres))
	}
	if len(f.Keywords) > 0 {
		q.Set("with_keywords", joinIDs(f.Keywords))
	}
	if len(f.Companies) > 0 {
		q.Set("with_companies", joinIDs(f.Companies))
	}
	sort := f.SortBy
	if sort == "" {
		sort = SortPopularityDesc
	}
	q.Set("sort_by", string(sort))
	var lr listResp
	if err := c.get(ctx, "/discover/"+string(kind), page, q, &lr); err != nil {
		return Page{}, err
	}
	return c.toPage(kind, lr), nil
}

// Trending lists the week's trending items for a kind; feeds the home
// carousel.
func (c *Client) Trending(ctx context.Context, kind model.MediaKind, page int) (Page, error) {
	if !kind.Valid() {
		return Page{}, fmt.Errorf("invalid media kind %q", kind)
	}
	var lr listResp
	if err := c.get(ctx, "/trending/"+string(kind)+"/week", page, nil, &lr); err != nil {
		return Page{}, err
	}
	return c.toPage(kind, lr), nil
}

// Similar lists items similar to the given one.
func (c *Client) Similar(ctx context.Context, kind model.MediaKind, id int64, page int) (Page, error) {
	if !kind.Valid() {
		return Page{}, fmt.Errorf("invalid media kind %q", kind)
	}
	var lr listResp
	path := fmt.Sprintf("/%s/%d/similar", kind, id)
	if err := c.get(ctx, path, page, nil, &lr); err != nil {
		return Page{}, err
	}
	return c.toPage(kind, lr), nil
}

// SearchMulti searches movies and shows in one call; results carry their
// media_type. Results that are neither (people) are dropped.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (Page, error) {
	q := url.Values{}
	q.Set("query", query)
	var lr listResp
	if err := c.get(ctx, "/search/multi", page, q, &lr); err != nil {
		return Page{}, err
	}
	out := Page{TotalPages: lr.TotalPages, Items: make([]model.MediaItem, 0, len(lr.Results))}
	for _, it := range lr.Results {
		k := model.MediaKind(it.MediaType)
		if !k.Valid() {
			continue
		}
		out.Items = append(out.Items, it.toModel(k))
	}
	return out, nil
}

func (c *Client) toPage(kind model.MediaKind, lr listResp) Page {
	p := Page{TotalPages: lr.TotalPages, Items: make([]model.MediaItem, 0, len(lr.Results))}
	for _, it := range lr.Results {
		p.Items = append(p.Items, it.toModel(kind))
	}
	return p
}

// get performs one throttled GET and decodes the body into out.
// page <= 0 omits the page parameter.
func (c *Client) get(ctx context.Context, path string, page int, params url.Values, out any) error {
	if c.APIKey == "" {
		return errors.New("missing TMDB API key")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.APIKey)
	if c.Language != "" {
		q.Set("language", c.Language)
	}
	q.Set("include_adult", "false")
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	hc := c.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
