package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateEquipmentRecordDTO struct {
	InventoryID      uint64      `json:"inventory_id" validate:"required,gt=0"`
	SerialNumber     null.String `json:"serial_number" validate:"omitempty"`
	CompanyPurchase  null.Bool   `json:"company_purchase" validate:"omitempty"`
	ServiceAgreement null.Bool   `json:"service_agreement" validate:"omitempty"`
	CustomerID       null.Uint64 `json:"customer_id" validate:"omitempty,gt=0"`
	InvoiceDate      null.Time   `json:"invoice_date" validate:"omitempty"`
	VendorID         null.Uint64 `json:"vendor_id" validate:"omitempty,gt=0"`
	PurchaseDate     null.Time   `json:"purchase_date" validate:"omitempty"`
}

// UpdateEquipmentRecordDTO - частичное обновление: пишутся только валидные
// (присланные) поля. Явный false у булевых полей - это значение, а не "не задано".
type UpdateEquipmentRecordDTO struct {
	InventoryID      null.Uint64 `json:"inventory_id" validate:"omitempty,gt=0"`
	SerialNumber     null.String `json:"serial_number" validate:"omitempty"`
	CompanyPurchase  null.Bool   `json:"company_purchase" validate:"omitempty"`
	ServiceAgreement null.Bool   `json:"service_agreement" validate:"omitempty"`
	CustomerID       null.Uint64 `json:"customer_id" validate:"omitempty,gt=0"`
	InvoiceDate      null.Time   `json:"invoice_date" validate:"omitempty"`
	VendorID         null.Uint64 `json:"vendor_id" validate:"omitempty,gt=0"`
	PurchaseDate     null.Time   `json:"purchase_date" validate:"omitempty"`
}

// SearchEquipmentDTO - опциональные предикаты поиска. Отсутствующее поле не
// накладывает ограничений; текстовые поля матчатся подстрочно, булевы и id - на
// равенство. CustomerNum/InventoryNum имеют приоритет над CustomerID/InventoryID.
type SearchEquipmentDTO struct {
	CustomerNum      null.String `query:"customer_num"`
	CustomerID       null.Uint64 `query:"customer_id"`
	InventoryNum     null.String `query:"inventory_num"`
	InventoryID      null.Uint64 `query:"inventory_id"`
	SerialNumber     null.String `query:"serial_number"`
	CompanyPurchase  null.Bool   `query:"company_purchase"`
	ServiceAgreement null.Bool   `query:"service_agreement"`
	ID               null.Uint64 `query:"id"`
}

// EquipmentRecordDTO - отображаемая строка: натуральные ключи вместо внутренних
// id, даты в формате MM/DD/YYYY (как в исходной выгрузке).
type EquipmentRecordDTO struct {
	ID               uint64 `json:"id"`
	InventoryNum     string `json:"inventory_num"`
	SerialNumber     string `json:"serial_number"`
	CompanyPurchase  bool   `json:"company_purchase"`
	ServiceAgreement bool   `json:"service_agreement"`
	CustomerNum      string `json:"customer_num"`
	InvoiceDate      string `json:"invoice_date"`
	VendorNum        string `json:"vendor_num"`
	PurchaseDate     string `json:"purchase_date"`
}
