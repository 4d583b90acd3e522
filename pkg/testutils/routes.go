// Package testutils provides test-only API endpoints.
// These routes are only registered when ENVIRONMENT=test.
package testutils

import (
	"github.com/jcarcamo/fyyur-project/pkg/seed"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers test-only routes.
// These endpoints should ONLY be registered in test environments.
func RegisterRoutes(e *echo.Echo, db *bun.DB, seeder *seed.Seeder) {
	h := &handler{db: db, seeder: seeder}

	test := e.Group("/test")
	test.POST("/seed", h.seedData)
	test.DELETE("/data", h.deleteAllData)
}
