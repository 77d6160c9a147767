package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
)

const equipmentTable = "equipment_records"

// Поля выборки поиска: запись леджера + натуральные ключи справочников.
var equipmentSearchFields = []string{
	"er.id",
	"er.inventory_id", "i.inventory_num",
	"er.serial_number",
	"er.company_purchase", "er.service_agreement",
	"er.customer_id", "c.customer_num",
	"er.invoice_date",
	"er.vendor_id", "v.vendor_num",
	"er.purchase_date",
}

// Ярусная сортировка "NULL в конец": записи без клиента, без позиции, без даты
// счета и без серийника группируются в хвосте каждого яруса независимо.
var equipmentOrderBy = []string{
	"CASE WHEN c.customer_num IS NULL THEN 1 ELSE 0 END", "c.customer_num",
	"CASE WHEN i.inventory_num IS NULL THEN 1 ELSE 0 END", "i.inventory_num",
	"CASE WHEN er.invoice_date IS NULL THEN 1 ELSE 0 END", "er.invoice_date",
	"CASE WHEN er.serial_number IS NULL OR er.serial_number = '' THEN 1 ELSE 0 END", "er.serial_number",
}

type EquipmentRepositoryInterface interface {
	Search(ctx context.Context, filter dto.SearchEquipmentDTO) ([]entities.EquipmentRow, error)
	// Create намеренно не возвращает id: вставка "выстрелил и забыл", кто хочет
	// id - ищет запись заново. Так ведет себя внешняя система, поведение сохранено.
	Create(ctx context.Context, tx pgx.Tx, rec entities.EquipmentRecord) error
	// Update пишет только валидные поля; ноль валидных полей - no-op без SQL.
	Update(ctx context.Context, tx pgx.Tx, id uint64, rec entities.EquipmentRecord) error
	// Delete безусловный; отсутствующий id ошибкой не считается.
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
}

type equipmentRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage, logger: logger}
}

// wildcardWrap превращает свободный текст в LIKE-шаблон: слова матчатся по
// порядку, в любом месте значения ("acme corp" -> "%acme%corp%").
func wildcardWrap(s string) string {
	return "%" + strings.Join(strings.Fields(s), "%") + "%"
}

// buildSearchQuery собирает поисковый SELECT. Все значения уходят связанными
// параметрами; идентификаторы - только из констант этого файла.
func buildSearchQuery(filter dto.SearchEquipmentDTO) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(equipmentSearchFields...).
		From(equipmentTable + " er").
		LeftJoin("customers c ON er.customer_id = c.id").
		LeftJoin("inventory i ON er.inventory_id = i.id").
		LeftJoin("vendors v ON er.vendor_id = v.id")

	// Текстовый натуральный ключ имеет приоритет над внутренним id.
	if filter.CustomerNum.Valid {
		builder = builder.Where(sq.Like{"c.customer_num": wildcardWrap(filter.CustomerNum.String)})
	} else if filter.CustomerID.Valid {
		builder = builder.Where(sq.Eq{"er.customer_id": filter.CustomerID.Uint64})
	}
	if filter.InventoryNum.Valid {
		builder = builder.Where(sq.Like{"i.inventory_num": wildcardWrap(filter.InventoryNum.String)})
	} else if filter.InventoryID.Valid {
		builder = builder.Where(sq.Eq{"er.inventory_id": filter.InventoryID.Uint64})
	}
	if filter.SerialNumber.Valid {
		builder = builder.Where(sq.Like{"er.serial_number": wildcardWrap(filter.SerialNumber.String)})
	}
	if filter.ServiceAgreement.Valid {
		builder = builder.Where(sq.Eq{"er.service_agreement": filter.ServiceAgreement.Bool})
	}
	if filter.CompanyPurchase.Valid {
		builder = builder.Where(sq.Eq{"er.company_purchase": filter.CompanyPurchase.Bool})
	}
	if filter.ID.Valid {
		builder = builder.Where(sq.Eq{"er.id": filter.ID.Uint64})
	}

	return builder.OrderBy(equipmentOrderBy...).ToSql()
}

func scanEquipmentRow(rows pgx.Rows) (entities.EquipmentRow, error) {
	var row entities.EquipmentRow
	err := rows.Scan(
		&row.ID,
		&row.InventoryID, &row.InventoryNum,
		&row.SerialNumber,
		&row.CompanyPurchase, &row.ServiceAgreement,
		&row.CustomerID, &row.CustomerNum,
		&row.InvoiceDate,
		&row.VendorID, &row.VendorNum,
		&row.PurchaseDate,
	)
	if err != nil {
		return row, fmt.Errorf("ошибка сканирования equipment_records: %w", err)
	}
	return row, nil
}

func (r *equipmentRepository) Search(ctx context.Context, filter dto.SearchEquipmentDTO) ([]entities.EquipmentRow, error) {
	query, args, err := buildSearchQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки поискового запроса: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска оборудования: %w", err)
	}
	defer rows.Close()

	result := make([]entities.EquipmentRow, 0)
	for rows.Next() {
		row, err := scanEquipmentRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *equipmentRepository) Create(ctx context.Context, tx pgx.Tx, rec entities.EquipmentRecord) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	// Булевы поля материализуются всегда: "не задано" нормализуется в false.
	query, args, err := psql.Insert(equipmentTable).
		Columns("inventory_id", "customer_id", "vendor_id", "purchase_date",
			"invoice_date", "serial_number", "company_purchase", "service_agreement").
		Values(rec.InventoryID, rec.CustomerID, rec.VendorID, rec.PurchaseDate,
			rec.InvoiceDate, rec.SerialNumber, rec.CompanyPurchase.Bool, rec.ServiceAgreement.Bool).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка создания записи оборудования: %w", err)
	}
	return nil
}

func (r *equipmentRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, rec entities.EquipmentRecord) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Update(equipmentTable)

	updated := 0
	if rec.InventoryID.Valid {
		builder = builder.Set("inventory_id", rec.InventoryID.Uint64)
		updated++
	}
	if rec.CustomerID.Valid {
		builder = builder.Set("customer_id", rec.CustomerID.Uint64)
		updated++
	}
	if rec.VendorID.Valid {
		builder = builder.Set("vendor_id", rec.VendorID.Uint64)
		updated++
	}
	if rec.PurchaseDate.Valid {
		builder = builder.Set("purchase_date", rec.PurchaseDate.Time)
		updated++
	}
	if rec.InvoiceDate.Valid {
		builder = builder.Set("invoice_date", rec.InvoiceDate.Time)
		updated++
	}
	if rec.SerialNumber.Valid {
		builder = builder.Set("serial_number", rec.SerialNumber.String)
		updated++
	}
	// Явный false должен записаться, поэтому проверяем валидность обертки,
	// а не значение.
	if rec.CompanyPurchase.Valid {
		builder = builder.Set("company_purchase", rec.CompanyPurchase.Bool)
		updated++
	}
	if rec.ServiceAgreement.Valid {
		builder = builder.Set("service_agreement", rec.ServiceAgreement.Bool)
		updated++
	}

	// Нечего обновлять - не ходим в базу вообще.
	if updated == 0 {
		r.logger.Debug("Update без полей - пропущен", zap.Uint64("id", id))
		return nil
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка обновления записи оборудования id=%d: %w", id, err)
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка удаления записи оборудования id=%d: %w", id, err)
	}
	return nil
}
