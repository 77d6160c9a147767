package dto

// ImportReportDTO - итог разбора одного файла выгрузки. Построчные сбои не
// прерывают импорт, поэтому отчет - единственный способ их увидеть.
type ImportReportDTO struct {
	RowsTotal   int `json:"rows_total"`
	RowsMatched int `json:"rows_matched"`
	Created     int `json:"created"`
	Deleted     int `json:"deleted"`
	Updated     int `json:"updated"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
}

type NoteSyncReportDTO struct {
	Customers int `json:"customers"`
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Removed   int `json:"removed"`
}

type ResolveResultDTO struct {
	ID  uint64 `json:"id"`
	Num string `json:"num"`
}
