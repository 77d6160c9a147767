package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type dictionaryRow struct {
	Num  string
	Name string
}

var customerRows = []dictionaryRow{
	{Num: "CUST-001", Name: "Главный офис, ООО \"Альфа\""},
	{Num: "CUST-002", Name: "ООО \"Бета Трейд\""},
	{Num: "CUST-003", Name: "ИП Сидоров"},
}

var inventoryRows = []dictionaryRow{
	{Num: "Copier A3", Name: "Копировальный аппарат A3"},
	{Num: "Printer LJ", Name: "Лазерный принтер"},
	{Num: "Scanner HS", Name: "Высокоскоростной сканер"},
}

var vendorRows = []dictionaryRow{
	{Num: "VEND-001", Name: "Дистрибьютор техники"},
	{Num: "VEND-002", Name: "Сервисный партнер"},
}

func seedDictionary(ctx context.Context, db *pgxpool.Pool, table, numColumn string, rows []dictionaryRow) error {
	log.Printf("  - Наполнение таблицы '%s'...", table)

	sql := "INSERT INTO " + table + " (" + numColumn + ", name) VALUES ($1, $2) ON CONFLICT (" + numColumn + ") DO NOTHING"
	for _, row := range rows {
		if _, err := db.Exec(ctx, sql, row.Num, row.Name); err != nil {
			return err
		}
	}
	return nil
}

func seedCustomers(ctx context.Context, db *pgxpool.Pool) error {
	return seedDictionary(ctx, db, "customers", "customer_num", customerRows)
}

func seedInventory(ctx context.Context, db *pgxpool.Pool) error {
	// У номенклатуры колонка описания называется description.
	log.Println("  - Наполнение таблицы 'inventory'...")
	for _, row := range inventoryRows {
		sql := "INSERT INTO inventory (inventory_num, description) VALUES ($1, $2) ON CONFLICT (inventory_num) DO NOTHING"
		if _, err := db.Exec(ctx, sql, row.Num, row.Name); err != nil {
			return err
		}
	}
	return nil
}

func seedVendors(ctx context.Context, db *pgxpool.Pool) error {
	return seedDictionary(ctx, db, "vendors", "vendor_num", vendorRows)
}
