package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Note - запись внешней таблицы заметок. Таблицей владеет другая подсистема,
// мы трогаем только note_text у строк с module_code='Customer'.
type Note struct {
	ID         uint64
	ModuleCode string
	RecordID   uint64
	NoteText   string
	NoteDate   time.Time
}

// NoteEquipmentRow - строка леджера в том виде, в котором она нужна
// генератору заметок: клиент + описание позиции + атрибуты единицы.
type NoteEquipmentRow struct {
	CustomerID       uint64
	InventoryNum     string
	SerialNumber     null.String
	InvoiceDate      null.Time
	CompanyPurchase  bool
	ServiceAgreement bool
}
