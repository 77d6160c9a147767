package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-system/internal/entities"
)

// Апдейт без единого валидного поля не должен ходить в базу вообще:
// транзакция и пул здесь намеренно nil, обращение к ним уронило бы тест.
func TestEquipmentUpdate_NoFieldsIsNoop(t *testing.T) {
	repo := NewEquipmentRepository(nil, zap.NewNop())

	err := repo.Update(context.Background(), nil, 1, entities.EquipmentRecord{})
	require.NoError(t, err)
}
