package venues

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers venue routes on a pre-configured group.
// Static segments are matched before /:id.
func RegisterRoutesWithGroup(g *echo.Group, venueService *Service) {
	h := &handler{
		venueService: venueService,
	}

	g.GET("", h.list)
	g.GET("/search", h.search)
	g.POST("/search", h.search)
	g.GET("/create", h.createForm)
	g.POST("/create", h.create)
	g.GET("/:id", h.retrieve)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/edit", h.editForm)
	g.POST("/:id/edit", h.update)
}
