// Package migrations embeds the SQL schema migrations for the client-side
// preferences database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
