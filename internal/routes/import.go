package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runImportRouter(g *echo.Group, importCtrl *controllers.ImportController) {
	g.POST("/import/sales", importCtrl.ImportSales)
	g.POST("/import/purchases", importCtrl.ImportPurchases)
}
