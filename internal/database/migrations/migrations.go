package migrations

import "embed"

// Migrations holds the SQL files applied by database.Migrate.
//
//go:embed *.sql
var Migrations embed.FS
