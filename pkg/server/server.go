package server

import (
	"net/http"
	"time"

	"github.com/jcarcamo/fyyur-project/pkg/artists"
	"github.com/jcarcamo/fyyur-project/pkg/binder"
	"github.com/jcarcamo/fyyur-project/pkg/cache"
	"github.com/jcarcamo/fyyur-project/pkg/config"
	"github.com/jcarcamo/fyyur-project/pkg/errcodes"
	"github.com/jcarcamo/fyyur-project/pkg/genres"
	"github.com/jcarcamo/fyyur-project/pkg/search"
	"github.com/jcarcamo/fyyur-project/pkg/seed"
	"github.com/jcarcamo/fyyur-project/pkg/shows"
	"github.com/jcarcamo/fyyur-project/pkg/testutils"
	"github.com/jcarcamo/fyyur-project/pkg/venues"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// New builds the API server. redisClient may be nil, in which case no
// response cache is used.
func New(cfg *config.Config, db *bun.DB, redisClient *redis.Client) (*http.Server, error) {
	e, err := newEcho(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB, redisClient *redis.Client) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	genreService := genres.NewService(db)
	searchService := search.NewService(db, cfg.SearchResultLimit)
	venueService := venues.NewService(db, genreService, searchService)
	artistService := artists.NewService(db, genreService, searchService)
	showService := shows.NewService(db, artistService, venueService)

	if redisClient != nil {
		e.Use(cache.New(redisClient, cfg.CacheTTL, showService).Middleware())
	}

	health.RegisterRoutes(e)

	venues.RegisterRoutesWithGroup(e.Group("/venues"), venueService)
	artists.RegisterRoutesWithGroup(e.Group("/artists"), artistService)
	shows.RegisterRoutesWithGroup(e.Group("/shows"), showService)
	genres.RegisterRoutesWithGroup(e.Group("/genres"), genreService)
	search.RegisterRoutesWithGroup(e.Group("/search"), searchService)

	if cfg.Environment == config.EnvironmentTest {
		testutils.RegisterRoutes(e, db, seed.New(db, venueService, artistService, showService))
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
