package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RefKind - закрытый перечень справочников, по которым разрешен резолв
// натуральных ключей. Имена таблиц и колонок берутся только отсюда, поэтому
// невайтлистовый идентификатор в запрос попасть не может; неизвестное значение
// enum'а - дефект программиста, на нем паникуем сразу.
type RefKind int

const (
	RefCustomer RefKind = iota
	RefInventory
	RefVendor
)

func (k RefKind) String() string {
	switch k {
	case RefCustomer:
		return "customer"
	case RefInventory:
		return "inventory"
	case RefVendor:
		return "vendor"
	}
	return fmt.Sprintf("RefKind(%d)", int(k))
}

// table / numColumn - единственная точка, где enum превращается в идентификаторы SQL.
func (k RefKind) table() string {
	switch k {
	case RefCustomer:
		return "customers"
	case RefInventory:
		return "inventory"
	case RefVendor:
		return "vendors"
	}
	panic(fmt.Sprintf("RefKind вне белого списка: %d", int(k)))
}

func (k RefKind) numColumn() string {
	switch k {
	case RefCustomer:
		return "customer_num"
	case RefInventory:
		return "inventory_num"
	case RefVendor:
		return "vendor_num"
	}
	panic(fmt.Sprintf("RefKind вне белого списка: %d", int(k)))
}

// RefKindFromString - разбор kind из внешнего мира (URL). Неизвестное имя -
// ошибка запроса, а не паника: снаружи это данные, а не код.
func RefKindFromString(s string) (RefKind, bool) {
	switch s {
	case "customer":
		return RefCustomer, true
	case "inventory":
		return RefInventory, true
	case "vendor":
		return RefVendor, true
	}
	return 0, false
}

type LookupRepositoryInterface interface {
	// ResolveID возвращает внутренний id по натуральному ключу, 0 - если
	// совпадений нет (это не ошибка). При нескольких совпадениях берется первая
	// строка, которую вернуло хранилище.
	ResolveID(ctx context.Context, kind RefKind, naturalKey string) (uint64, error)
	// NaturalKey - обратный резолв для отображения; "" если id не найден.
	NaturalKey(ctx context.Context, kind RefKind, id uint64) (string, error)
}

type lookupRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewLookupRepository(storage *pgxpool.Pool, logger *zap.Logger) LookupRepositoryInterface {
	return &lookupRepository{storage: storage, logger: logger}
}

func (r *lookupRepository) ResolveID(ctx context.Context, kind RefKind, naturalKey string) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select("id").
		From(kind.table()).
		Where(sq.Eq{kind.numColumn(): naturalKey}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса ResolveID: %w", err)
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("ошибка резолва %s '%s': %w", kind, naturalKey, err)
	}
	return id, nil
}

func (r *lookupRepository) NaturalKey(ctx context.Context, kind RefKind, id uint64) (string, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(kind.numColumn()).
		From(kind.table()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("ошибка сборки запроса NaturalKey: %w", err)
	}

	var num string
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&num); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("ошибка обратного резолва %s id=%d: %w", kind, id, err)
	}
	return num, nil
}
