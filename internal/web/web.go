// Package web holds the server-rendered page templates.
package web

import "embed"

// Templates contains layouts/, pages/, forms/ and errors/.
//
//go:embed templates
var Templates embed.FS
