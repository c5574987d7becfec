package inventory

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ritzau/lockgraph/pkg/logging"
)

// Scan walks the installation directory and returns the set of installed
// module names. Each .pm file maps to a module name by stripping the
// extension and joining path segments with "::" (Foo/Bar.pm -> Foo::Bar).
// A missing directory yields an empty set: nothing is installed yet.
func Scan(libDir string) (map[string]bool, error) {
	installed := make(map[string]bool)

	err := filepath.WalkDir(libDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Skip hidden and architecture-specific metadata directories
			name := d.Name()
			if path != libDir && (strings.HasPrefix(name, ".") || name == "auto") {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".pm" {
			return nil
		}

		rel, err := filepath.Rel(libDir, path)
		if err != nil {
			return err
		}
		installed[moduleName(rel)] = true
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return installed, nil
		}
		return nil, err
	}

	logging.Debug("scanned installed modules", "libdir", libDir, "count", len(installed))
	return installed, nil
}

// moduleName converts a libdir-relative file path to a module name.
func moduleName(rel string) string {
	rel = strings.TrimSuffix(rel, ".pm")
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "::")
}
