// Package migrations embeds the postgres schema migrations so they compile
// into the binary and apply on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
