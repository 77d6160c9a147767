package repositories

import (
	"strings"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-system/internal/dto"
)

func TestWildcardWrap(t *testing.T) {
	assert.Equal(t, "%acme%corp%", wildcardWrap("acme corp"))
	assert.Equal(t, "%acme%", wildcardWrap("  acme  "))
	assert.Equal(t, "%a%b%c%", wildcardWrap("a b c"))
	assert.Equal(t, "%%", wildcardWrap(""))
}

func TestBuildSearchQuery_EmptyFilter(t *testing.T) {
	sql, args, err := buildSearchQuery(dto.SearchEquipmentDTO{})
	require.NoError(t, err)

	// Пустой фильтр - весь леджер, без WHERE.
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)

	// Ярусная сортировка с NULL в конце каждого яруса.
	assert.Contains(t, sql, "ORDER BY CASE WHEN c.customer_num IS NULL THEN 1 ELSE 0 END, c.customer_num")
	assert.Contains(t, sql, "CASE WHEN er.invoice_date IS NULL THEN 1 ELSE 0 END, er.invoice_date")
	assert.Contains(t, sql, "er.serial_number = '' THEN 1 ELSE 0 END, er.serial_number")

	assert.Contains(t, sql, "LEFT JOIN customers c ON er.customer_id = c.id")
	assert.Contains(t, sql, "LEFT JOIN inventory i ON er.inventory_id = i.id")
	assert.Contains(t, sql, "LEFT JOIN vendors v ON er.vendor_id = v.id")
}

func TestBuildSearchQuery_TextKeyTakesPriorityOverID(t *testing.T) {
	sql, args, err := buildSearchQuery(dto.SearchEquipmentDTO{
		CustomerNum: null.StringFrom("acme corp"),
		CustomerID:  null.Uint64From(42),
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "c.customer_num LIKE")
	assert.NotContains(t, sql, "er.customer_id =")
	assert.Contains(t, args, "%acme%corp%")
}

func TestBuildSearchQuery_IDFallback(t *testing.T) {
	sql, args, err := buildSearchQuery(dto.SearchEquipmentDTO{
		CustomerID:  null.Uint64From(42),
		InventoryID: null.Uint64From(7),
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "er.customer_id =")
	assert.Contains(t, sql, "er.inventory_id =")
	assert.Contains(t, args, uint64(42))
	assert.Contains(t, args, uint64(7))
}

func TestBuildSearchQuery_AllValuesAreBound(t *testing.T) {
	sql, args, err := buildSearchQuery(dto.SearchEquipmentDTO{
		SerialNumber:     null.StringFrom("SN'; DROP TABLE--"),
		ServiceAgreement: null.BoolFrom(true),
		CompanyPurchase:  null.BoolFrom(false),
		ID:               null.Uint64From(3),
	})
	require.NoError(t, err)

	// Значения уходят только плейсхолдерами, в текст SQL не попадают.
	assert.NotContains(t, sql, "DROP TABLE")
	assert.Len(t, args, 4)
	assert.Equal(t, 4, strings.Count(sql, "$"))
}

func TestBuildSearchQuery_SerialWildcard(t *testing.T) {
	sql, args, err := buildSearchQuery(dto.SearchEquipmentDTO{
		SerialNumber: null.StringFrom("AB 12"),
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "er.serial_number LIKE")
	require.Len(t, args, 1)
	assert.Equal(t, "%AB%12%", args[0])
	assert.Equal(t, 1, strings.Count(sql, "WHERE"))
}
