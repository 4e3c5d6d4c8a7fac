// Package migrations embeds the dashboard schema for tests and tooling.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
