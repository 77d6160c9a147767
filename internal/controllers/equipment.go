package controllers

import (
	"net/http"
	"strconv"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/services"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(service services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		logger:           logger,
	}
}

// parseSearchFilter собирает опциональные предикаты из query-параметров.
// Отсутствующий параметр остается невалидной null-оберткой и не ограничивает поиск.
func parseSearchFilter(ctx echo.Context) (dto.SearchEquipmentDTO, error) {
	var filter dto.SearchEquipmentDTO

	if v := ctx.QueryParam("customer_num"); v != "" {
		filter.CustomerNum = null.StringFrom(v)
	}
	if v := ctx.QueryParam("inventory_num"); v != "" {
		filter.InventoryNum = null.StringFrom(v)
	}
	if v := ctx.QueryParam("serial_number"); v != "" {
		filter.SerialNumber = null.StringFrom(v)
	}
	for param, target := range map[string]*null.Uint64{
		"customer_id":  &filter.CustomerID,
		"inventory_id": &filter.InventoryID,
		"id":           &filter.ID,
	} {
		if v := ctx.QueryParam(param); v != "" {
			parsed, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return filter, apperrors.NewHttpError(http.StatusBadRequest,
					"Неверный формат параметра "+param, err, nil)
			}
			*target = null.Uint64From(parsed)
		}
	}
	for param, target := range map[string]*null.Bool{
		"company_purchase":  &filter.CompanyPurchase,
		"service_agreement": &filter.ServiceAgreement,
	} {
		if v := ctx.QueryParam(param); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return filter, apperrors.NewHttpError(http.StatusBadRequest,
					"Неверный формат параметра "+param, err, nil)
			}
			*target = null.BoolFrom(parsed)
		}
	}

	return filter, nil
}

func (c *EquipmentController) Search(ctx echo.Context) error {
	filter, err := parseSearchFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.Search(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("Search: ошибка поиска оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Не удалось выполнить поиск оборудования", err, nil),
			c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список оборудования успешно получен", http.StatusOK)
}

func (c *EquipmentController) Create(ctx echo.Context) error {
	var payload dto.CreateEquipmentRecordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.Create(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Не удалось создать запись оборудования", err, nil),
			c.logger)
	}

	// Вставка не возвращает id: внешняя система работает так же, клиенты
	// при необходимости ищут запись заново.
	return utils.SuccessResponse(ctx, nil, "Запись оборудования создана", http.StatusCreated)
}

func (c *EquipmentController) Update(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID записи", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger)
	}

	var payload dto.UpdateEquipmentRecordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.Update(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Не удалось обновить запись оборудования", err, nil),
			c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Запись оборудования обновлена", http.StatusOK)
}

func (c *EquipmentController) Delete(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID записи", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			c.logger)
	}

	if err := c.equipmentService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Не удалось удалить запись оборудования", err, nil),
			c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Запись оборудования удалена", http.StatusOK)
}
