package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
)

// Маркер строки продажи в выгрузке. Остальные строки (шапки, итоги) пропускаются.
const salesRowMarker = "Invoice"

// SalesImportService - реконсиляция леджера по выгрузке продаж. Файл
// обрабатывается в два прохода по всем строкам: сначала все добавления
// (количество > 0), затем все возвраты (количество < 0). Порядок обязателен:
// возврат в конце файла может погасить добавление из начала того же файла.
// Каждая мутация коммитится отдельно - сбой строки не трогает остальные.
type SalesImportService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	lookupService       *LookupService
	txManager           repositories.TxManagerInterface
	logger              *zap.Logger
}

func NewSalesImportService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	lookupService *LookupService,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *SalesImportService {
	return &SalesImportService{
		equipmentRepository: equipmentRepository,
		lookupService:       lookupService,
		txManager:           txManager,
		logger:              logger,
	}
}

func (s *SalesImportService) ImportFile(ctx context.Context, path string) (dto.ImportReportDTO, error) {
	rows, err := readExportRows(path)
	if err != nil {
		return dto.ImportReportDTO{}, err
	}
	return s.importRows(ctx, rows)
}

func (s *SalesImportService) importRows(ctx context.Context, rows [][]string) (dto.ImportReportDTO, error) {
	report := dto.ImportReportDTO{RowsTotal: len(rows)}

	// Проход 1: добавления по всему файлу.
	for _, row := range rows {
		if rowField(row, 0) != salesRowMarker {
			continue
		}
		report.RowsMatched++
		s.importAdditions(ctx, row, &report)
	}

	// Проход 2: возвраты по всему файлу.
	for _, row := range rows {
		if rowField(row, 0) != salesRowMarker {
			continue
		}
		s.importReturns(ctx, row, &report)
	}

	return report, nil
}

// importAdditions создает по одной записи на каждую единицу строки с
// количеством > 0: i-й серийник из списка, либо без серийника, если список короче.
func (s *SalesImportService) importAdditions(ctx context.Context, row []string, report *dto.ImportReportDTO) {
	quantity, err := strconv.Atoi(strings.TrimSpace(rowField(row, 4)))
	if err != nil {
		s.logger.Warn("строка продажи с нечисловым количеством - пропущена",
			zap.String("quantity", rowField(row, 4)))
		report.Failed++
		return
	}
	if quantity <= 0 {
		return
	}

	var invoiceDate null.Time
	if parsed, ok := parseExportDate(rowField(row, 1)); ok {
		invoiceDate = null.TimeFrom(parsed)
	}

	customerID, err := s.lookupService.ResolveID(ctx, repositories.RefCustomer, rowField(row, 2))
	if err != nil {
		s.logger.Error("ошибка резолва клиента", zap.String("customer_num", rowField(row, 2)), zap.Error(err))
		report.Failed++
		return
	}
	itemID, err := s.lookupService.ResolveID(ctx, repositories.RefInventory, itemNaturalKey(rowField(row, 3)))
	if err != nil {
		s.logger.Error("ошибка резолва позиции", zap.String("item", rowField(row, 3)), zap.Error(err))
		report.Failed++
		return
	}

	// Промах резолва - не ошибка: строку просто пропускаем.
	if customerID == 0 || itemID == 0 {
		s.logger.Info("строка продажи пропущена: клиент или позиция не найдены",
			zap.String("customer_num", rowField(row, 2)),
			zap.String("item", itemNaturalKey(rowField(row, 3))))
		report.Skipped += quantity
		return
	}

	serials := strings.Split(rowField(row, 5), ",")
	for i := 0; i < quantity; i++ {
		var serial null.String
		if i < len(serials) {
			serial = null.StringFrom(serials[i])
		}

		rec := entities.EquipmentRecord{
			InventoryID:      null.Uint64From(itemID),
			CustomerID:       null.Uint64From(customerID),
			InvoiceDate:      invoiceDate,
			SerialNumber:     serial,
			CompanyPurchase:  null.BoolFrom(true),
			ServiceAgreement: null.BoolFrom(false),
		}

		err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			return s.equipmentRepository.Create(ctx, tx, rec)
		})
		if err != nil {
			s.logger.Error("не удалось создать запись оборудования", zap.Error(err))
			report.Failed++
			continue
		}
		report.Created++
	}
}

// importReturns обрабатывает строки с количеством < 0: для каждого серийника
// ищет записи по тому же предикатному пути, что и интерактивный поиск
// (частичное совпадение), и удаляет те, чья дата счета строго раньше даты
// возврата. Проданное заново после возврата остается нетронутым.
func (s *SalesImportService) importReturns(ctx context.Context, row []string, report *dto.ImportReportDTO) {
	quantity, err := strconv.Atoi(strings.TrimSpace(rowField(row, 4)))
	if err != nil || quantity >= 0 {
		return
	}

	returnDate, ok := parseExportDate(rowField(row, 1))
	if !ok {
		// Без даты возврата сравнивать нечего - ничего не удаляем.
		s.logger.Warn("строка возврата без распознаваемой даты - пропущена",
			zap.String("date", rowField(row, 1)))
		return
	}

	itemKey := itemNaturalKey(rowField(row, 3))
	serials := strings.Split(rowField(row, 5), ",")

	for i := 0; i < -quantity && i < len(serials); i++ {
		if serials[i] == "" {
			continue
		}

		matches, err := s.equipmentRepository.Search(ctx, dto.SearchEquipmentDTO{
			InventoryNum: null.StringFrom(itemKey),
			SerialNumber: null.StringFrom(serials[i]),
			CustomerNum:  null.StringFrom(rowField(row, 2)),
		})
		if err != nil {
			s.logger.Error("ошибка поиска при обработке возврата",
				zap.String("serial", serials[i]), zap.Error(err))
			report.Failed++
			continue
		}

		for _, match := range matches {
			// Запись без даты счета не "раньше" возврата - не трогаем.
			if !match.InvoiceDate.Valid || !match.InvoiceDate.Time.Before(returnDate) {
				continue
			}

			id := match.ID
			err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
				return s.equipmentRepository.Delete(ctx, tx, id)
			})
			if err != nil {
				s.logger.Error("не удалось удалить запись по возврату",
					zap.Uint64("id", id), zap.Error(err))
				report.Failed++
				continue
			}
			s.logger.Info("возврат: запись удалена",
				zap.Uint64("id", id), zap.String("serial", serials[i]))
			report.Deleted++
		}
	}
}
