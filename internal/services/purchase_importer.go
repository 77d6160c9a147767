package services

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
)

// Маркер строки счета поставщика в выгрузке закупок.
const purchaseRowMarker = "Bill"

// PurchaseImportService - бэкфил даты закупки по выгрузке счетов: каждому
// серийнику строки проставляется дата счета частичным UPDATE. Несколько
// совпадений по одному серийнику обновляются все - серийник легитимно
// встречается по разу на каждую продажу клиенту.
type PurchaseImportService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	txManager           repositories.TxManagerInterface
	logger              *zap.Logger
}

func NewPurchaseImportService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *PurchaseImportService {
	return &PurchaseImportService{
		equipmentRepository: equipmentRepository,
		txManager:           txManager,
		logger:              logger,
	}
}

func (s *PurchaseImportService) ImportFile(ctx context.Context, path string) (dto.ImportReportDTO, error) {
	rows, err := readExportRows(path)
	if err != nil {
		return dto.ImportReportDTO{}, err
	}
	return s.importRows(ctx, rows)
}

func (s *PurchaseImportService) importRows(ctx context.Context, rows [][]string) (dto.ImportReportDTO, error) {
	report := dto.ImportReportDTO{RowsTotal: len(rows)}

	for _, row := range rows {
		if rowField(row, 0) != purchaseRowMarker || rowField(row, 1) == "" {
			continue
		}
		report.RowsMatched++

		purchaseDate, ok := parseExportDate(rowField(row, 1))
		if !ok {
			s.logger.Warn("строка счета с нераспознаваемой датой - пропущена",
				zap.String("date", rowField(row, 1)))
			report.Failed++
			continue
		}

		serials := strings.Split(rowField(row, 5), ",")
		for _, serial := range serials {
			// Первый пустой элемент - конец списка, а не пропуск.
			if serial == "" {
				break
			}
			s.backfillSerial(ctx, serial, purchaseDate, &report)
		}
	}

	return report, nil
}

// backfillSerial ищет записи по серийнику (тот же предикатный путь, что и
// интерактивный поиск) и проставляет каждой дату закупки.
func (s *PurchaseImportService) backfillSerial(ctx context.Context, serial string, purchaseDate time.Time, report *dto.ImportReportDTO) {
	matches, err := s.equipmentRepository.Search(ctx, dto.SearchEquipmentDTO{
		SerialNumber: null.StringFrom(serial),
	})
	if err != nil {
		s.logger.Error("ошибка поиска по серийнику", zap.String("serial", serial), zap.Error(err))
		report.Failed++
		return
	}

	for _, match := range matches {
		id := match.ID
		err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			return s.equipmentRepository.Update(ctx, tx, id, entities.EquipmentRecord{
				PurchaseDate: null.TimeFrom(purchaseDate),
			})
		})
		if err != nil {
			s.logger.Error("не удалось проставить дату закупки",
				zap.Uint64("id", id), zap.Error(err))
			report.Failed++
			continue
		}
		report.Updated++
	}
}
