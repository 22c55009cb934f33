// Package migrations expone los .sql de goose como FS embebido,
// para que el binario migre solo al arrancar sin archivos sueltos.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
