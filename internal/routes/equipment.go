package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runEquipmentRouter(g *echo.Group, equipmentCtrl *controllers.EquipmentController) {
	g.GET("/equipment", equipmentCtrl.Search)
	g.POST("/equipment", equipmentCtrl.Create)
	g.PUT("/equipment/:id", equipmentCtrl.Update)
	g.DELETE("/equipment/:id", equipmentCtrl.Delete)
}
