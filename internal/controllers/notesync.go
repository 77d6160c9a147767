package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/services"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
)

type NoteSyncController struct {
	noteSyncService *services.NoteSyncService
	logger          *zap.Logger
}

func NewNoteSyncController(noteSyncService *services.NoteSyncService, logger *zap.Logger) *NoteSyncController {
	return &NoteSyncController{noteSyncService: noteSyncService, logger: logger}
}

// Push - POST /notes/push. Полная перегенерация клиентских сводок из леджера.
func (c *NoteSyncController) Push(ctx echo.Context) error {
	report, err := c.noteSyncService.PushToNotes(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Push: ошибка синхронизации заметок", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Не удалось синхронизировать заметки", err, nil),
			c.logger)
	}

	return utils.SuccessResponse(ctx, report, "Заметки синхронизированы", http.StatusOK)
}
