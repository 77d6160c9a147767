package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники клиентов, номенклатуры и поставщиков.
// Идемпотентно: повторный запуск ничего не дублирует (ON CONFLICT DO NOTHING).
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedCustomers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Клиентов (Customers): %v", err)
	}
	if err := seedInventory(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Номенклатуры (Inventory): %v", err)
	}
	if err := seedVendors(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Поставщиков (Vendors): %v", err)
	}

	log.Println("✅ Наполнение справочников завершено!")
}
