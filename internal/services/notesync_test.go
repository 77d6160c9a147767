package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
)

func TestRenderNoteLine(t *testing.T) {
	row := entities.NoteEquipmentRow{
		InventoryNum:     "Copier A3",
		SerialNumber:     null.StringFrom("X1"),
		InvoiceDate:      null.TimeFrom(time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)),
		CompanyPurchase:  true,
		ServiceAgreement: false,
	}
	assert.Equal(t,
		"\nCopier A3 - S/N X1,  purchased 6/5/23\n    StalPur  NO SERVAGR",
		renderNoteLine(row))
}

// Отсутствующие серийник и дата дают пустые места в строке, сам шаблон
// не меняется.
func TestRenderNoteLine_MissingFields(t *testing.T) {
	row := entities.NoteEquipmentRow{
		InventoryNum:     "Printer",
		CompanyPurchase:  false,
		ServiceAgreement: true,
	}
	assert.Equal(t,
		"\nPrinter - S/N ,  purchased \n    NOT STALPUR  ServAgr",
		renderNoteLine(row))
}

func newNoteSyncForTest(noteRepo *fakeNoteRepository) *NoteSyncService {
	return NewNoteSyncService(noteRepo, &fakeTxManager{}, zap.NewNop())
}

func TestPushToNotes_FullCycle(t *testing.T) {
	noteRepo := newFakeNoteRepository()

	// Клиент 7 уже имеет сводку (будет обновлена), клиент 99 имеет устаревшую
	// сводку без оборудования (будет удалена), клиент 8 - новый.
	noteRepo.addNote(7, repositories.NoteSentinel+"\nстарый текст")
	noteRepo.addNote(99, repositories.NoteSentinel+"\nустаревшее")
	noteRepo.equipment = []entities.NoteEquipmentRow{
		{CustomerID: 7, InventoryNum: "Copier A3", SerialNumber: null.StringFrom("X1"),
			InvoiceDate: null.TimeFrom(time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)),
			CompanyPurchase: true},
		{CustomerID: 7, InventoryNum: "Printer", ServiceAgreement: true, CompanyPurchase: true},
		{CustomerID: 8, InventoryNum: "Scanner", CompanyPurchase: false},
	}

	svc := newNoteSyncForTest(noteRepo)
	report, err := svc.PushToNotes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Customers)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.Removed)

	// Устаревшая сводка удалена.
	_, stale := noteRepo.noteFor(99)
	assert.False(t, stale)

	// Текст начинается с маркера и содержит строки в порядке леджера.
	note7, ok := noteRepo.noteFor(7)
	require.True(t, ok)
	expected7 := repositories.NoteSentinel +
		"\nCopier A3 - S/N X1,  purchased 6/5/23\n    StalPur  NO SERVAGR" +
		"\nPrinter - S/N ,  purchased \n    StalPur  ServAgr"
	assert.Equal(t, expected7, note7.NoteText)
	// Существующая заметка сохранила свой id.
	assert.Equal(t, uint64(1), note7.ID)

	note8, ok := noteRepo.noteFor(8)
	require.True(t, ok)
	assert.Equal(t, repositories.NoteSentinel+
		"\nScanner - S/N ,  purchased \n    NOT STALPUR  NO SERVAGR",
		note8.NoteText)
}

// Повторный прогон на неизменном леджере дает байт-идентичный текст.
func TestPushToNotes_Idempotent(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	noteRepo.equipment = []entities.NoteEquipmentRow{
		{CustomerID: 7, InventoryNum: "Copier A3", SerialNumber: null.StringFrom("X1"), CompanyPurchase: true},
	}

	svc := newNoteSyncForTest(noteRepo)

	_, err := svc.PushToNotes(context.Background())
	require.NoError(t, err)
	first, ok := noteRepo.noteFor(7)
	require.True(t, ok)

	report, err := svc.PushToNotes(context.Background())
	require.NoError(t, err)

	second, ok := noteRepo.noteFor(7)
	require.True(t, ok)
	assert.Equal(t, first.NoteText, second.NoteText)
	// Второй прогон обновляет существующую заметку, а не плодит новые.
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 0, report.Inserted)
}

func TestPushToNotes_EmptyLedgerRemovesAll(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	noteRepo.addNote(7, repositories.NoteSentinel+"\nстарое")

	svc := newNoteSyncForTest(noteRepo)
	report, err := svc.PushToNotes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.Removed)
	assert.Empty(t, noteRepo.notes)
}

// Заметки без маркера принадлежат другим продьюсерам: синк их не обнуляет,
// не переписывает и не удаляет - даже у клиента, которому пишет свою сводку.
func TestPushToNotes_ForeignNotesUntouched(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	noteRepo.addNote(5, "ручная заметка оператора")
	noteRepo.addNote(7, "договоренность по оплате")
	noteRepo.equipment = []entities.NoteEquipmentRow{
		{CustomerID: 7, InventoryNum: "Printer", CompanyPurchase: true},
	}

	svc := newNoteSyncForTest(noteRepo)
	report, err := svc.PushToNotes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 0, report.Removed)

	// Чужие заметки пережили синк байт-в-байт.
	require.Len(t, noteRepo.notes, 3)
	assert.Equal(t, "ручная заметка оператора", noteRepo.notes[0].NoteText)
	assert.Equal(t, "договоренность по оплате", noteRepo.notes[1].NoteText)

	// Сводка клиента 7 создана отдельной заметкой, а не поверх чужой.
	note7, ok := noteRepo.noteFor(7)
	require.True(t, ok)
	assert.Equal(t, repositories.NoteSentinel+
		"\nPrinter - S/N ,  purchased \n    StalPur  NO SERVAGR",
		note7.NoteText)
}
