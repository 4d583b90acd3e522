// Package cache keeps rendered listing responses in Redis. Every successful
// write request bumps a generation counter that is part of each key, so a
// write invalidates everything cached before it. An entry never outlives the
// next show start, since that moves a show from upcoming to past.
package cache

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/segmentio/encoding/json"
)

const (
	keyPrefix     = "fyyur:response"
	generationKey = "fyyur:generation"
	headerCache   = "X-Cache"
)

// cachedPaths are the route paths whose GET responses are stored.
var cachedPaths = map[string]bool{
	"/venues":  true,
	"/artists": true,
	"/shows":   true,
	"/genres":  true,
}

// Horizon reports the earliest show start at or after now, or nil when
// there is none.
type Horizon interface {
	NextStartTime(ctx context.Context, now time.Time) (*time.Time, error)
}

type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	horizon Horizon
	now     func() time.Time
}

type entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func New(client *redis.Client, ttl time.Duration, horizon Horizon) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		horizon: horizon,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NewClient connects to the Redis server at url, e.g.
// redis://localhost:6379/0, and pings it.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return client, nil
}

type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Middleware serves cached GET responses for the listing routes and
// invalidates them after any successful write. Redis failures are logged
// and the request is served from the database.
func (ch *Cache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodHead || req.Method == http.MethodOptions {
				return next(c)
			}
			if req.Method != http.MethodGet {
				err := next(c)
				if err == nil && c.Response().Status < http.StatusBadRequest && !readOnly(c) {
					if ierr := ch.client.Incr(req.Context(), generationKey).Err(); ierr != nil {
						logger.FromEchoContext(c).Err(ierr).Warn("cache invalidation failed")
					}
				}
				return err
			}
			if !cachedPaths[c.Path()] {
				return next(c)
			}

			key, err := ch.key(req.Context(), c)
			if err != nil {
				logger.FromEchoContext(c).Err(err).Warn("cache unavailable")
				return next(c)
			}

			if e, ok := ch.lookup(c, key); ok {
				c.Response().Header().Set(headerCache, "HIT")
				return errors.WithStack(c.Blob(e.Status, e.ContentType, e.Body))
			}

			// The deadline is fixed before the handler reads the clock.
			deadline, ok := ch.deadline(c)

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set(headerCache, "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || !ok {
				return nil
			}
			ttl := deadline.Sub(ch.now())
			if ttl <= 0 {
				return nil
			}

			payload, err := json.Marshal(entry{
				Status:      cw.status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        cw.buf.Bytes(),
			})
			if err != nil {
				return errors.WithStack(err)
			}
			if err := ch.client.Set(req.Context(), key, payload, ttl).Err(); err != nil {
				logger.FromEchoContext(c).Err(err).Warn("cache store failed")
			}
			return nil
		}
	}
}

// readOnly reports whether a non-GET route only reads, like the form
// searches, so it must not invalidate anything.
func readOnly(c echo.Context) bool {
	return strings.HasSuffix(c.Path(), "/search")
}

// deadline is when an entry rendered now stops being valid: the configured
// TTL, cut short by the next show start. ok is false when the horizon can't
// be read, in which case nothing is stored.
func (ch *Cache) deadline(c echo.Context) (time.Time, bool) {
	now := ch.now()
	deadline := now.Add(ch.ttl)
	if ch.horizon == nil {
		return deadline, true
	}
	next, err := ch.horizon.NextStartTime(c.Request().Context(), now)
	if err != nil {
		logger.FromEchoContext(c).Err(err).Warn("cache horizon unavailable")
		return time.Time{}, false
	}
	if next != nil && next.Before(deadline) {
		deadline = *next
	}
	return deadline, true
}

func (ch *Cache) key(ctx context.Context, c echo.Context) (string, error) {
	generation, err := ch.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", errors.WithStack(err)
	}
	return keyPrefix + ":" + strconv.FormatInt(generation, 10) + ":" + c.Request().URL.RequestURI(), nil
}

func (ch *Cache) lookup(c echo.Context, key string) (*entry, bool) {
	bs, err := ch.client.Get(c.Request().Context(), key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromEchoContext(c).Err(err).Warn("cache lookup failed")
		}
		return nil, false
	}
	e := &entry{}
	if err := json.Unmarshal(bs, e); err != nil {
		logger.FromEchoContext(c).Err(err).Warn("discarding unreadable cache entry")
		return nil, false
	}
	return e, true
}
