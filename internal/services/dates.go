package services

import (
	"strings"
	"time"
)

// Выгрузки приходят с датами в американских форматах, иногда с временем.
// Набор закрытый, поэтому обычный перебор layout'ов вместо "умного" парсера.
var exportDateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	time.RFC3339,
	"Jan 2, 2006",
	"2-Jan-2006",
}

// parseExportDate - мягкий разбор даты из выгрузки. Нераспознанная или пустая
// строка означает "даты нет", а не ошибку строки (файл продолжаем).
func parseExportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range exportDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// displayDate - формат дат для отображаемых строк (MM/DD/YYYY).
func displayDate(t time.Time) string {
	return t.Format("01/02/2006")
}

// noteDate - формат дат в тексте заметок: без ведущих нулей, двузначный год.
// Ровно так пишет даунстрим-потребитель заметок, формат менять нельзя.
func noteDate(t time.Time) string {
	return t.Format("1/2/06")
}
