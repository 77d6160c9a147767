package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
)

// NoteSyncService проецирует текущий леджер в клиентские заметки внешней
// системы. Полная идемпотентная замена в дискретных фазах:
//  1. все наши заметки обнуляются до голого маркера (помечаем "не обновлено");
//  2. текст перегенерируется детерминированно из текущего леджера;
//  3. апсерт: существующая заметка - UPDATE, новая - INSERT;
//  4. заметки, оставшиеся голым маркером, удаляются (у клиента нет оборудования).
//
// Фазы коммитятся раздельно; упавший посередине синк чинится повторным
// запуском - повторный прогон на неизменном леджере байт-идентичен.
type NoteSyncService struct {
	noteRepository repositories.NoteRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewNoteSyncService(
	noteRepository repositories.NoteRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *NoteSyncService {
	return &NoteSyncService{
		noteRepository: noteRepository,
		txManager:      txManager,
		logger:         logger,
	}
}

// renderNoteLine - фиксированный формат строки сводки. Формат парсится
// даунстримом на устройствах, включая двойные пробелы и токены статусов.
func renderNoteLine(row entities.NoteEquipmentRow) string {
	serial := ""
	if row.SerialNumber.Valid {
		serial = row.SerialNumber.String
	}
	purchased := ""
	if row.InvoiceDate.Valid {
		purchased = noteDate(row.InvoiceDate.Time)
	}

	line := fmt.Sprintf("\n%s - S/N %s,  purchased %s\n    ", row.InventoryNum, serial, purchased)
	if row.CompanyPurchase {
		line += "StalPur"
	} else {
		line += "NOT STALPUR"
	}
	if row.ServiceAgreement {
		line += "  ServAgr"
	} else {
		line += "  NO SERVAGR"
	}
	return line
}

func (s *NoteSyncService) PushToNotes(ctx context.Context) (dto.NoteSyncReportDTO, error) {
	var report dto.NoteSyncReportDTO

	// Фаза 1: обнулить наши заметки до маркера. Не удаляем: голый маркер -
	// страховка от осиротевших сводок, его подчистит фаза 4.
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		blanked, err := s.noteRepository.BlankEquipmentNotes(ctx, tx)
		if err == nil {
			s.logger.Debug("заметки обнулены до маркера", zap.Int64("count", blanked))
		}
		return err
	})
	if err != nil {
		return report, err
	}

	// Фаза 2: собрать тексты из текущего леджера.
	notes, err := s.noteRepository.EquipmentNotes(ctx)
	if err != nil {
		return report, err
	}
	equipment, err := s.noteRepository.EquipmentForNotes(ctx)
	if err != nil {
		return report, err
	}

	for _, row := range equipment {
		note, ok := notes[row.CustomerID]
		if !ok {
			note = entities.Note{RecordID: row.CustomerID, NoteText: repositories.NoteSentinel}
		}
		note.NoteText += renderNoteLine(row)
		notes[row.CustomerID] = note
	}
	report.Customers = len(notes)

	// Фаза 3: апсерт.
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, note := range notes {
			if note.ID == 0 {
				if err := s.noteRepository.InsertCustomerNote(ctx, tx, note.RecordID, note.NoteText); err != nil {
					return err
				}
				report.Inserted++
				continue
			}
			if err := s.noteRepository.UpdateNoteText(ctx, tx, note.ID, note.NoteText); err != nil {
				return err
			}
			report.Updated++
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	// Фаза 4: удалить устаревшие сводки (остались голым маркером).
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		removed, err := s.noteRepository.DeleteBareEquipmentNotes(ctx, tx)
		report.Removed = int(removed)
		return err
	})
	if err != nil {
		return report, err
	}

	s.logger.Info("синхронизация заметок завершена",
		zap.Int("customers", report.Customers),
		zap.Int("inserted", report.Inserted),
		zap.Int("updated", report.Updated),
		zap.Int("removed", report.Removed))
	return report, nil
}
