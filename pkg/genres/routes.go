package genres

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers genre routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, genreService *Service) {
	h := &handler{
		genreService: genreService,
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
}
