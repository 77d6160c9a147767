// Пакет migrations встраивает goose-миграции схемы, чтобы бинарник
// накатывал их сам при старте.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
