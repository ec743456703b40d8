package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	pkgcache "github.com/Nitesh-orv-5149/PopCornPics/pkg/cache"
	pkgtmdb "github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

const genreTTL = 24 * time.Hour

// searchCachePrefix matches the keys the search handler writes.
const searchCachePrefix = "search:"

// WarmGenres fetches the genre tables for both kinds and primes the cache so
// the first /genres request doesn't pay the remote round trip.
func WarmGenres(ctx context.Context, c *pkgtmdb.Client, cch pkgcache.Cache) error {
	for _, kind := range []model.MediaKind{model.KindMovie, model.KindTV} {
		genres, err := c.GenreList(ctx, kind)
		if err != nil {
			return err
		}
		b, err := json.Marshal(map[string]any{"genres": genres})
		if err != nil {
			return err
		}
		if err := cch.Set(ctx, "genres:"+string(kind), string(b), genreTTL); err != nil {
			return err
		}
	}
	return nil
}

// RefreshGenres re-warms the genre tables and invalidates cached search
// responses, whose items carry genre data derived from the old tables.
func RefreshGenres(ctx context.Context, c *pkgtmdb.Client, cch pkgcache.Cache) error {
	if err := WarmGenres(ctx, c, cch); err != nil {
		return err
	}
	return cch.DeletePrefix(ctx, searchCachePrefix)
}

// StartGenreRefresh warms the genre cache immediately and refreshes it daily.
func StartGenreRefresh(ctx context.Context, c *pkgtmdb.Client, cch pkgcache.Cache) {
	if c == nil {
		log.Warn().Msg("catalog client not configured; skipping genre refresh")
		return
	}
	go func() {
		if err := WarmGenres(ctx, c, cch); err != nil {
			log.Error().Err(err).Msg("initial genre warm failed")
		}
		ticker := time.NewTicker(genreTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := RefreshGenres(ctx, c, cch); err != nil {
					log.Error().Err(err).Msg("genre refresh failed")
				} else {
					log.Info().Msg("genre cache refreshed")
				}
			}
		}
	}()
}
