// Package migrations embeds the goose SQL migrations that provision the
// backing storage. Every statement uses IF NOT EXISTS semantics so the
// migrations stay idempotent when several processes race to provision.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
