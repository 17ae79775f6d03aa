//go:build dev

package resources

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// Embedded reports whether FS serves assets compiled into the binary.
const Embedded = false

// getStaticDir derives the absolute path to the static directory
// relative to this source file, regardless of where the binary is run from.
func getStaticDir() string {
	// runtime.Caller(0) returns the path to this specific file (static_dev.go)
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		// Fallback if something goes wrong (rare)
		return StaticDirectoryPath
	}
	// static_dev.go is in internal/ui/resources/, static/ is a sibling directory
	return filepath.Join(filepath.Dir(filename), "static")
}

// Dir returns the on-disk static directory, for the file watcher.
func Dir() string {
	return getStaticDir()
}

// FS returns the static assets straight from the source tree so edits show
// up without rebuilding.
func FS() fs.FS {
	staticDir := getStaticDir()
	slog.Info("static assets served from filesystem", "path", staticDir)
	return os.DirFS(staticDir)
}
