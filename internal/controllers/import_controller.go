package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/utils"
)

type importRunner interface {
	ImportFile(ctx context.Context, path string) (dto.ImportReportDTO, error)
}

// ImportController принимает файлы выгрузок (CSV/XLSX) и прогоняет их через
// соответствующий импортер. Файл спулится во временный каталог под uuid-именем
// и удаляется после обработки.
type ImportController struct {
	salesImporter    importRunner
	purchaseImporter importRunner
	uploadDir        string
	logger           *zap.Logger
}

func NewImportController(salesImporter, purchaseImporter importRunner, uploadDir string, logger *zap.Logger) *ImportController {
	return &ImportController{
		salesImporter:    salesImporter,
		purchaseImporter: purchaseImporter,
		uploadDir:        uploadDir,
		logger:           logger,
	}
}

func (c *ImportController) ImportSales(ctx echo.Context) error {
	return c.runImport(ctx, c.salesImporter, "выгрузка продаж")
}

func (c *ImportController) ImportPurchases(ctx echo.Context) error {
	return c.runImport(ctx, c.purchaseImporter, "выгрузка закупок")
}

func (c *ImportController) runImport(ctx echo.Context, runner importRunner, label string) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest,
				"Файл выгрузки не передан (поле file)", err, nil),
			c.logger)
	}

	path, err := c.spoolUpload(fileHeader)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Не удалось сохранить файл выгрузки", err, nil),
			c.logger)
	}
	defer os.Remove(path)

	report, err := runner.ImportFile(ctx.Request().Context(), path)
	if err != nil {
		c.logger.Error("ошибка импорта", zap.String("type", label), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError,
				"Импорт не выполнен: "+label, err, nil),
			c.logger)
	}

	c.logger.Info("импорт завершен",
		zap.String("type", label),
		zap.String("file", fileHeader.Filename),
		zap.Int("rows", report.RowsMatched),
		zap.Int("created", report.Created),
		zap.Int("deleted", report.Deleted),
		zap.Int("updated", report.Updated))
	return utils.SuccessResponse(ctx, report, "Импорт завершен", http.StatusOK)
}

// spoolUpload сохраняет загруженный файл под уникальным именем, сохраняя
// расширение оригинала: по нему читатель выбирает CSV или XLSX.
func (c *ImportController) spoolUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	path := filepath.Join(c.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
