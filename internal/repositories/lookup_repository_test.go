package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefKindFromString(t *testing.T) {
	kind, ok := RefKindFromString("customer")
	assert.True(t, ok)
	assert.Equal(t, RefCustomer, kind)

	kind, ok = RefKindFromString("inventory")
	assert.True(t, ok)
	assert.Equal(t, RefInventory, kind)

	kind, ok = RefKindFromString("vendor")
	assert.True(t, ok)
	assert.Equal(t, RefVendor, kind)

	// Неизвестное имя снаружи - ошибка запроса, не паника.
	_, ok = RefKindFromString("users; DROP TABLE users")
	assert.False(t, ok)
	_, ok = RefKindFromString("")
	assert.False(t, ok)
}

func TestRefKind_Identifiers(t *testing.T) {
	assert.Equal(t, "customers", RefCustomer.table())
	assert.Equal(t, "customer_num", RefCustomer.numColumn())
	assert.Equal(t, "inventory", RefInventory.table())
	assert.Equal(t, "inventory_num", RefInventory.numColumn())
	assert.Equal(t, "vendors", RefVendor.table())
	assert.Equal(t, "vendor_num", RefVendor.numColumn())
}

// Значение enum'а вне белого списка - дефект кода: идентификатор в SQL из него
// получить нельзя.
func TestRefKind_PanicsOutsideWhitelist(t *testing.T) {
	bogus := RefKind(42)
	assert.Panics(t, func() { _ = bogus.table() })
	assert.Panics(t, func() { _ = bogus.numColumn() })
}
