package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runLookupRouter(g *echo.Group, lookupCtrl *controllers.LookupController) {
	g.GET("/lookup/:kind", lookupCtrl.Resolve)
}
