package shows

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutesWithGroup(g *echo.Group, showService *Service) {
	h := &handler{
		showService: showService,
	}

	g.GET("", h.list)
	g.GET("/create", h.createForm)
	g.POST("/create", h.create)
}
