// Package migrations встраивает SQL-миграции в бинарный файл.
package migrations

import "embed"

// NotesDir - каталог миграций сервиса заметок внутри FS.
const NotesDir = "notes"

// FS содержит файлы миграций.
//
//go:embed notes/*.sql
var FS embed.FS
