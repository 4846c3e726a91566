//go:build go1.16
// +build go1.16

// Package datafiles holds the static files of the browser frontend which
// are compiled into the server.
package datafiles

import "embed" // at least "import _ "embed"" is required

//go:embed index.html
var IndexHTML string

//go:embed index.html style.css
var StaticFS embed.FS
