package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/repositories"
	"equipment-system/internal/services"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
)

type LookupController struct {
	lookupService *services.LookupService
	logger        *zap.Logger
}

func NewLookupController(lookupService *services.LookupService, logger *zap.Logger) *LookupController {
	return &LookupController{lookupService: lookupService, logger: logger}
}

// Resolve - GET /lookup/:kind?num=...
// kind приходит снаружи, поэтому валидируется как данные; внутрь уходит
// только значение закрытого перечня RefKind.
func (c *LookupController) Resolve(ctx echo.Context) error {
	kind, ok := repositories.RefKindFromString(ctx.Param("kind"))
	if !ok {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest,
				"Неизвестный справочник: "+ctx.Param("kind"), nil, nil),
			c.logger)
	}

	num := ctx.QueryParam("num")
	if num == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest,
				"Параметр num обязателен", nil, nil),
			c.logger)
	}

	id, err := c.lookupService.ResolveID(ctx.Request().Context(), kind, num)
	if err != nil {
		c.logger.Error("Resolve: ошибка резолва", zap.String("kind", kind.String()), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Не удалось выполнить резолв", err, nil),
			c.logger)
	}

	// Промах - мягкий: 404 с телом, а не ошибка сервиса.
	if id == 0 {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusNotFound,
				"Совпадение не найдено", nil,
				map[string]interface{}{"kind": kind.String(), "num": num}),
			c.logger)
	}

	return utils.SuccessResponse(ctx, dto.ResolveResultDTO{ID: id, Num: num},
		"Резолв выполнен", http.StatusOK)
}
