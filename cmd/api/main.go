package main

import (
	"context"
	"net/http"

	"github.com/jcarcamo/fyyur-project/pkg/cache"
	"github.com/jcarcamo/fyyur-project/pkg/config"
	"github.com/jcarcamo/fyyur-project/pkg/database"
	"github.com/jcarcamo/fyyur-project/pkg/migrations"
	"github.com/jcarcamo/fyyur-project/pkg/server"
	"github.com/jcarcamo/fyyur-project/pkg/version"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting fyyur", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			// the directory works without the cache
			log.Err(err).Warn("response cache disabled")
			redisClient = nil
		} else {
			log.Info("response cache enabled", logger.Data{"ttl": cfg.CacheTTL.String()})
		}
	}

	srv, err := server.New(cfg, db, redisClient)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		log.Info("server started", logger.Data{"addr": srv.Addr})
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Err(err).Error("redis close error")
		}
	}

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
