package main

import (
	"context"
	"fmt"

	"github.com/mkhasanov/go-user-guard/internal/config"
	"github.com/mkhasanov/go-user-guard/internal/handler"
	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/revocation"
	"github.com/mkhasanov/go-user-guard/internal/server"
	"github.com/mkhasanov/go-user-guard/internal/service"
	"github.com/mkhasanov/go-user-guard/internal/store"
	"github.com/mkhasanov/go-user-guard/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("user-guard-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	revoked, cleanup := newRevocationStore(ctx, cfg.Storage.Revocation, log)
	defer cleanup()

	storages := store.NewStorages(db, log)
	services := service.NewServices(*storages, revoked, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newRevocationStore picks the revocation backend: Redis when an address is
// configured (shared across instances), otherwise a process-local in-memory
// store with a background sweeper purging expired entries. The returned
// cleanup stops whichever backend was chosen.
func newRevocationStore(ctx context.Context, cfg config.Revocation, log *logger.Logger) (revocation.Store, func()) {
	if cfg.RedisAddress != "" {
		redisStore, err := revocation.NewRedisStore(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to redis revocation store")
		}
		return redisStore, func() {
			if err := redisStore.Close(); err != nil {
				log.Err(err).Msg("error closing redis revocation store")
			}
		}
	}

	memStore := revocation.NewMemoryStore()
	sweeper := workers.NewRevocationSweeper(memStore, cfg.SweepInterval, log)
	workers.NewWorkers(sweeper).Run()

	return memStore, sweeper.Stop
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
