package services

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"equipment-system/internal/dto"
	"equipment-system/internal/entities"
	"equipment-system/internal/repositories"
)

// fakeTxManager выполняет функцию без настоящей транзакции: репозитории-фейки
// tx не используют.
type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// fakeEquipmentRepository записывает все вызовы, чтобы тесты могли проверить
// и результат, и порядок операций.
type fakeEquipmentRepository struct {
	rows     []entities.EquipmentRow
	searchFn func(filter dto.SearchEquipmentDTO) []entities.EquipmentRow

	searches []dto.SearchEquipmentDTO
	created  []entities.EquipmentRecord
	updated  map[uint64][]entities.EquipmentRecord
	deleted  []uint64
	actions  []string
}

func newFakeEquipmentRepository() *fakeEquipmentRepository {
	return &fakeEquipmentRepository{updated: make(map[uint64][]entities.EquipmentRecord)}
}

func (r *fakeEquipmentRepository) Search(_ context.Context, filter dto.SearchEquipmentDTO) ([]entities.EquipmentRow, error) {
	r.searches = append(r.searches, filter)
	if r.searchFn != nil {
		return r.searchFn(filter), nil
	}
	return r.rows, nil
}

func (r *fakeEquipmentRepository) Create(_ context.Context, _ pgx.Tx, rec entities.EquipmentRecord) error {
	r.created = append(r.created, rec)
	r.actions = append(r.actions, "create")
	return nil
}

func (r *fakeEquipmentRepository) Update(_ context.Context, _ pgx.Tx, id uint64, rec entities.EquipmentRecord) error {
	r.updated[id] = append(r.updated[id], rec)
	r.actions = append(r.actions, "update")
	return nil
}

func (r *fakeEquipmentRepository) Delete(_ context.Context, _ pgx.Tx, id uint64) error {
	r.deleted = append(r.deleted, id)
	r.actions = append(r.actions, "delete")
	return nil
}

// fakeLookupRepository резолвит по словарю "kind:naturalKey" -> id.
type fakeLookupRepository struct {
	ids   map[string]uint64
	calls int
}

func (r *fakeLookupRepository) ResolveID(_ context.Context, kind repositories.RefKind, naturalKey string) (uint64, error) {
	r.calls++
	return r.ids[kind.String()+":"+naturalKey], nil
}

func (r *fakeLookupRepository) NaturalKey(_ context.Context, _ repositories.RefKind, _ uint64) (string, error) {
	return "", nil
}

// fakeCacheRepository - кеш в памяти для проверки мемоизации резолва.
type fakeCacheRepository struct {
	values map[string]string
	sets   int
	hits   int
}

func newFakeCacheRepository() *fakeCacheRepository {
	return &fakeCacheRepository{values: make(map[string]string)}
}

func (c *fakeCacheRepository) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.values[key] = value.(string)
	c.sets++
	return nil
}

func (c *fakeCacheRepository) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		c.hits++
		return v, nil
	}
	return "", context.Canceled
}

func (c *fakeCacheRepository) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

// fakeNoteRepository моделирует таблицу заметок в памяти. Таблица общая:
// рядом с нашими сводками живут чужие заметки без маркера, и фейк, как и
// настоящие запросы, трогает только строки с маркерным префиксом.
type fakeNoteRepository struct {
	notes     []entities.Note
	equipment []entities.NoteEquipmentRow
	nextID    uint64
}

func newFakeNoteRepository() *fakeNoteRepository {
	return &fakeNoteRepository{}
}

func (r *fakeNoteRepository) addNote(customerID uint64, text string) {
	r.nextID++
	r.notes = append(r.notes, entities.Note{ID: r.nextID, RecordID: customerID, NoteText: text})
}

// noteFor возвращает маркированную сводку клиента, как ее увидел бы синк.
func (r *fakeNoteRepository) noteFor(customerID uint64) (entities.Note, bool) {
	for _, n := range r.notes {
		if n.RecordID == customerID && strings.HasPrefix(n.NoteText, repositories.NoteSentinel) {
			return n, true
		}
	}
	return entities.Note{}, false
}

func (r *fakeNoteRepository) BlankEquipmentNotes(_ context.Context, _ pgx.Tx) (int64, error) {
	var count int64
	for i, n := range r.notes {
		if strings.HasPrefix(n.NoteText, repositories.NoteSentinel) {
			r.notes[i].NoteText = repositories.NoteSentinel
			count++
		}
	}
	return count, nil
}

func (r *fakeNoteRepository) EquipmentNotes(_ context.Context) (map[uint64]entities.Note, error) {
	out := make(map[uint64]entities.Note)
	for _, n := range r.notes {
		if strings.HasPrefix(n.NoteText, repositories.NoteSentinel) {
			out[n.RecordID] = n
		}
	}
	return out, nil
}

func (r *fakeNoteRepository) EquipmentForNotes(_ context.Context) ([]entities.NoteEquipmentRow, error) {
	return r.equipment, nil
}

func (r *fakeNoteRepository) UpdateNoteText(_ context.Context, _ pgx.Tx, noteID uint64, text string) error {
	for i, n := range r.notes {
		if n.ID == noteID {
			r.notes[i].NoteText = text
			return nil
		}
	}
	return nil
}

func (r *fakeNoteRepository) InsertCustomerNote(_ context.Context, _ pgx.Tx, customerID uint64, text string) error {
	r.addNote(customerID, text)
	return nil
}

func (r *fakeNoteRepository) DeleteBareEquipmentNotes(_ context.Context, _ pgx.Tx) (int64, error) {
	var count int64
	kept := r.notes[:0]
	for _, n := range r.notes {
		if n.NoteText == repositories.NoteSentinel {
			count++
			continue
		}
		kept = append(kept, n)
	}
	r.notes = kept
	return count, nil
}
