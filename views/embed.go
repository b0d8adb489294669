// Package views embeds the HTML templates.
package views

import "embed"

//go:embed *.html layouts/*.html partials/*.html questions/*.html admin/*.html
var FS embed.FS
