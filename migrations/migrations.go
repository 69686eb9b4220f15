// Package migrations incrusta los archivos SQL de goose para que el
// binario pueda migrar la base en el arranque sin herramientas externas.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
