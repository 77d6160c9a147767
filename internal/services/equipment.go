package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
)

type EquipmentServiceInterface interface {
	Search(ctx context.Context, filter dto.SearchEquipmentDTO) ([]dto.EquipmentRecordDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentRecordDTO) error
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentRecordDTO) error
	Delete(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	txManager           repositories.TxManagerInterface
	logger              *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		txManager:           txManager,
		logger:              logger,
	}
}

func toEquipmentRecordDTO(row entities.EquipmentRow) dto.EquipmentRecordDTO {
	out := dto.EquipmentRecordDTO{
		ID:               row.ID,
		InventoryNum:     row.InventoryNum.String,
		SerialNumber:     row.SerialNumber.String,
		CompanyPurchase:  row.CompanyPurchase,
		ServiceAgreement: row.ServiceAgreement,
		CustomerNum:      row.CustomerNum.String,
		VendorNum:        row.VendorNum.String,
	}
	if row.InvoiceDate.Valid {
		out.InvoiceDate = displayDate(row.InvoiceDate.Time)
	}
	if row.PurchaseDate.Valid {
		out.PurchaseDate = displayDate(row.PurchaseDate.Time)
	}
	return out
}

func (s *EquipmentService) Search(ctx context.Context, filter dto.SearchEquipmentDTO) ([]dto.EquipmentRecordDTO, error) {
	rows, err := s.equipmentRepository.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EquipmentRecordDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, toEquipmentRecordDTO(row))
	}
	return result, nil
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentRecordDTO) error {
	rec := entities.EquipmentRecord{
		InventoryID:      null.Uint64From(payload.InventoryID),
		CustomerID:       payload.CustomerID,
		VendorID:         payload.VendorID,
		PurchaseDate:     payload.PurchaseDate,
		InvoiceDate:      payload.InvoiceDate,
		SerialNumber:     payload.SerialNumber,
		CompanyPurchase:  payload.CompanyPurchase,
		ServiceAgreement: payload.ServiceAgreement,
	}
	// "Не задано" у флага закупки означает true: ручной ввод ведет учет
	// собственных продаж, обратное указывают явно.
	if !rec.CompanyPurchase.Valid {
		rec.CompanyPurchase = null.BoolFrom(true)
	}
	if !rec.ServiceAgreement.Valid {
		rec.ServiceAgreement = null.BoolFrom(false)
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.equipmentRepository.Create(ctx, tx, rec)
	})
	if err != nil {
		s.logger.Error("ошибка при создании записи оборудования", zap.Error(err))
		return err
	}
	s.logger.Info("запись оборудования создана", zap.Uint64("inventory_id", payload.InventoryID))
	return nil
}

func (s *EquipmentService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentRecordDTO) error {
	rec := entities.EquipmentRecord{
		InventoryID:      payload.InventoryID,
		CustomerID:       payload.CustomerID,
		VendorID:         payload.VendorID,
		PurchaseDate:     payload.PurchaseDate,
		InvoiceDate:      payload.InvoiceDate,
		SerialNumber:     payload.SerialNumber,
		CompanyPurchase:  payload.CompanyPurchase,
		ServiceAgreement: payload.ServiceAgreement,
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.equipmentRepository.Update(ctx, tx, id, rec)
	})
}

func (s *EquipmentService) Delete(ctx context.Context, id uint64) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.equipmentRepository.Delete(ctx, tx, id)
	})
}
