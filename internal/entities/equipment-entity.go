package entities

import (
	"github.com/aarondl/null/v8"
)

// EquipmentRecord - одна проданная/обслуживаемая единица оборудования.
// Все опциональные поля обернуты в null.*: невалидное значение означает
// "не задано", а явный false / пустая строка остаются записываемыми
// значениями. На этом держится контракт частичного UPDATE.
type EquipmentRecord struct {
	ID               uint64      `json:"id"`
	InventoryID      null.Uint64 `json:"inventory_id"`
	CustomerID       null.Uint64 `json:"customer_id"`
	VendorID         null.Uint64 `json:"vendor_id"`
	PurchaseDate     null.Time   `json:"purchase_date"`
	InvoiceDate      null.Time   `json:"invoice_date"`
	SerialNumber     null.String `json:"serial_number"`
	CompanyPurchase  null.Bool   `json:"company_purchase"`
	ServiceAgreement null.Bool   `json:"service_agreement"`
}

// EquipmentRow - строка результата поиска: запись леджера, уже склеенная
// с натуральными ключами справочников для отображения.
type EquipmentRow struct {
	ID               uint64
	InventoryID      null.Uint64
	InventoryNum     null.String
	SerialNumber     null.String
	CompanyPurchase  bool
	ServiceAgreement bool
	CustomerID       null.Uint64
	CustomerNum      null.String
	InvoiceDate      null.Time
	VendorID         null.Uint64
	VendorNum        null.String
	PurchaseDate     null.Time
}
