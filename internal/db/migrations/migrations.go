package migrations

import "embed"

// FS holds the SQL migrations applied by goose at startup.
//
//go:embed *.sql
var FS embed.FS
