package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/bookmarks"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/config"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/jobs"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/migrate"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/server"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/users"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/cache"
	pkgdb "github.com/Nitesh-orv-5149/PopCornPics/pkg/db"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/docstore"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/signer"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pkgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	if err := migrate.Up(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	profiles, err := docstore.NewPostgres(pool, "users")
	if err != nil {
		log.Fatal().Err(err).Msg("profile store init failed")
	}
	identities, err := docstore.NewPostgres(pool, "identities")
	if err != nil {
		log.Fatal().Err(err).Msg("identity store init failed")
	}

	catalogClient := tmdb.New(cfg.TMDBAPIKey)
	catalogClient.Language = cfg.TMDBLanguage
	sessions := signer.NewHMAC(cfg.SessionSecret)

	sd := pkgdeps.ServerDeps{
		Catalog:   catalogClient,
		Users:     users.New(profiles, identities, sessions),
		Bookmarks: bookmarks.New(profiles),
		Cache:     c,
		Sessions:  sessions,
		SearchTTL: cfg.SearchCacheTTL,
		Name:      "popcornpics",
		StartedAt: time.Now(),
	}
	api := server.New(sd, cfg.CORSAllowedOrigins)

	if cfg.TMDBAPIKey != "" {
		jobs.StartGenreRefresh(ctx, catalogClient, c)
	}

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}
