package artists

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutesWithGroup(g *echo.Group, artistService *Service) {
	h := &handler{
		artistService: artistService,
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
