// Package db embeds the schema migrations so the binary can bootstrap a
// fresh stats database from any working directory.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
