// Package views holds the server-rendered page templates.
package views

import "embed"

// FS contains the page templates and their layouts.
//
//go:embed *.html layouts/*.html
var FS embed.FS
