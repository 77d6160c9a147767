package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-system/internal/entities"
)

// NoteSentinel размечает принадлежащую нам часть текста заметки. Всё, что вне
// маркера, принадлежит другим продьюсерам и не трогается байт-в-байт.
const NoteSentinel = "--EQUIPMENT--"

// noteModuleCode - код модуля внешней системы для клиентских заметок.
// Значение wire-формата, менять нельзя.
const noteModuleCode = "Customer"

const noteTable = "notes"

type NoteRepositoryInterface interface {
	// BlankEquipmentNotes обнуляет (но не удаляет) все наши заметки до голого
	// маркера: так помечается "было наше, ещё не перегенерировано".
	BlankEquipmentNotes(ctx context.Context, tx pgx.Tx) (int64, error)
	// EquipmentNotes возвращает маркированные клиентские заметки: customer_id -> заметка.
	EquipmentNotes(ctx context.Context) (map[uint64]entities.Note, error)
	// EquipmentForNotes читает весь леджер со склейкой к инвентарю, в
	// детерминированном порядке (клиент, затем запись).
	EquipmentForNotes(ctx context.Context) ([]entities.NoteEquipmentRow, error)
	UpdateNoteText(ctx context.Context, tx pgx.Tx, noteID uint64, text string) error
	// InsertCustomerNote создает новую клиентскую заметку с фиксированными
	// флагами отправки на устройство и датой "сейчас".
	InsertCustomerNote(ctx context.Context, tx pgx.Tx, customerID uint64, text string) error
	// DeleteBareEquipmentNotes удаляет заметки, оставшиеся голым маркером:
	// у клиента больше нет оборудования, сводка устарела.
	DeleteBareEquipmentNotes(ctx context.Context, tx pgx.Tx) (int64, error)
}

type noteRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewNoteRepository(storage *pgxpool.Pool, logger *zap.Logger) NoteRepositoryInterface {
	return &noteRepository{storage: storage, logger: logger}
}

// buildBlankNotesQuery обнуляет до маркера только маркированные заметки:
// строки других продьюсеров (без префикса) фильтр не затрагивает.
func buildBlankNotesQuery() (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Update(noteTable).
		Set("note_text", NoteSentinel).
		Where(sq.Like{"note_text": NoteSentinel + "%"}).
		ToSql()
}

// buildEquipmentNotesQuery читает только клиентские заметки с маркерным
// префиксом.
func buildEquipmentNotesQuery() (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select("id", "record_id", "note_text").
		From(noteTable).
		Where(sq.Eq{"module_code": noteModuleCode}).
		Where(sq.Like{"note_text": NoteSentinel + "%"}).
		ToSql()
}

// buildEquipmentForNotesQuery - чтение леджера для генерации сводок.
// INNER JOIN: запись без позиции в сводке бессмысленна; запись без клиента
// сводку получить не может. Порядок фиксирован, чтобы повторный прогон давал
// байт-идентичный текст.
func buildEquipmentForNotesQuery() (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(
		"er.customer_id", "i.inventory_num", "er.serial_number",
		"er.invoice_date", "er.company_purchase", "er.service_agreement").
		From(equipmentTable + " er").
		InnerJoin("inventory i ON er.inventory_id = i.id").
		Where("er.customer_id IS NOT NULL").
		OrderBy("er.customer_id", "er.id").
		ToSql()
}

// buildDeleteBareNotesQuery удаляет только заметки, равные голому маркеру:
// сравнение точное, не префиксное, чтобы не задеть свежие сводки.
func buildDeleteBareNotesQuery() (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Delete(noteTable).
		Where(sq.Eq{"note_text": NoteSentinel}).
		ToSql()
}

func (r *noteRepository) BlankEquipmentNotes(ctx context.Context, tx pgx.Tx) (int64, error) {
	query, args, err := buildBlankNotesQuery()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса BlankEquipmentNotes: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ошибка обнуления заметок: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *noteRepository) EquipmentNotes(ctx context.Context) (map[uint64]entities.Note, error) {
	query, args, err := buildEquipmentNotesQuery()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса EquipmentNotes: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заметок: %w", err)
	}
	defer rows.Close()

	notes := make(map[uint64]entities.Note)
	for rows.Next() {
		var n entities.Note
		if err := rows.Scan(&n.ID, &n.RecordID, &n.NoteText); err != nil {
			return nil, fmt.Errorf("ошибка сканирования notes: %w", err)
		}
		n.ModuleCode = noteModuleCode
		notes[n.RecordID] = n
	}
	return notes, rows.Err()
}

func (r *noteRepository) EquipmentForNotes(ctx context.Context) ([]entities.NoteEquipmentRow, error) {
	query, args, err := buildEquipmentForNotesQuery()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса EquipmentForNotes: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения леджера для заметок: %w", err)
	}
	defer rows.Close()

	result := make([]entities.NoteEquipmentRow, 0)
	for rows.Next() {
		var row entities.NoteEquipmentRow
		if err := rows.Scan(&row.CustomerID, &row.InventoryNum, &row.SerialNumber,
			&row.InvoiceDate, &row.CompanyPurchase, &row.ServiceAgreement); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки леджера: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *noteRepository) UpdateNoteText(ctx context.Context, tx pgx.Tx, noteID uint64, text string) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(noteTable).
		Set("note_text", text).
		Where(sq.Eq{"id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса UpdateNoteText: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка обновления заметки id=%d: %w", noteID, err)
	}
	return nil
}

func (r *noteRepository) InsertCustomerNote(ctx context.Context, tx pgx.Tx, customerID uint64, text string) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(noteTable).
		Columns("module_code", "record_id", "note_text",
			"send_to_device", "always_send_to_device", "note_date").
		Values(noteModuleCode, customerID, text, true, true, sq.Expr("NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса InsertCustomerNote: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка создания заметки для клиента id=%d: %w", customerID, err)
	}
	return nil
}

func (r *noteRepository) DeleteBareEquipmentNotes(ctx context.Context, tx pgx.Tx) (int64, error) {
	query, args, err := buildDeleteBareNotesQuery()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса DeleteBareEquipmentNotes: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления пустых заметок: %w", err)
	}
	return tag.RowsAffected(), nil
}
