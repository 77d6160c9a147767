package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readExportRows читает файл выгрузки в плоские строки. Бухгалтерская система
// сохраняет один и тот же отчет либо в CSV (с BOM), либо в XLSX - формат
// выбираем по расширению.
func readExportRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSXRows(path)
	}
	return readCSVRows(path)
}

func readCSVRows(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла выгрузки: %w", err)
	}

	// Выгрузки приходят в utf-8-sig, BOM срезаем сами.
	content := strings.TrimPrefix(string(raw), "\ufeff")

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора CSV: %w", err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("в XLSX нет листов")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения листа '%s': %w", sheets[0], err)
	}
	return rows, nil
}

// rowField достает поле по индексу; XLSX обрезает пустые хвостовые ячейки,
// поэтому короткая строка - это пустые поля, а не ошибка.
func rowField(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// itemNaturalKey выделяет натуральный ключ позиции из поля-описания
// "<ключ> (<описание>)": всё до первой " (". Без скобок берем строку целиком.
func itemNaturalKey(desc string) string {
	if idx := strings.Index(desc, " ("); idx >= 0 {
		return desc[:idx]
	}
	return strings.TrimSpace(desc)
}
