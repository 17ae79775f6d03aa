//go:build !dev

package resources

import (
	"embed"
	"io/fs"
)

// Embedded reports whether FS serves assets compiled into the binary.
const Embedded = true

//go:embed static/*
var staticFS embed.FS

// Dir returns the on-disk static directory. Embedded builds have none.
func Dir() string {
	return ""
}

// FS returns the embedded static assets.
func FS() fs.FS {
	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // static/ is embedded at compile time
	}
	return fsys
}
