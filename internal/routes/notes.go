package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-system/internal/controllers"
)

func runNotesRouter(g *echo.Group, noteSyncCtrl *controllers.NoteSyncController) {
	g.POST("/notes/push", noteSyncCtrl.Push)
}
