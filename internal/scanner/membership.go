package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/lwcswitch/internal/types"
)

// ComponentRootDirName is the folder every component folder must live under.
const ComponentRootDirName = "lwc"

var componentExtensions = map[string]bool{
	".html": true,
	".js":   true,
	".css":  true,
	".svg":  true,
}

// IsComponentFile reports whether path may take part in component grouping:
// it sits below a folder named exactly "lwc", it has a recognized extension
// (or the .js-meta.xml suffix), and its folder holds <folder>.js-meta.xml.
// Any filesystem error counts as false.
func IsComponentFile(path string) bool {
	if path == "" {
		return false
	}

	clean := filepath.Clean(path)
	dir := filepath.Dir(clean)

	if !hasAncestor(dir, ComponentRootDirName) {
		return false
	}

	if !hasComponentExtension(filepath.Base(clean)) {
		return false
	}

	return hasMetaFile(dir)
}

// ComponentName derives the component name from a file's base name: the
// metadata suffix is stripped for metadata files, otherwise everything from
// the first dot on is dropped.
func ComponentName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, types.MetaSuffix) {
		return strings.TrimSuffix(base, types.MetaSuffix)
	}
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// MetaFilePath returns where the metadata file of the component folder dir
// is expected.
func MetaFilePath(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+types.MetaSuffix)
}

func hasAncestor(dir, segment string) bool {
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == segment {
			return true
		}
	}
	return false
}

func hasComponentExtension(base string) bool {
	if strings.HasSuffix(base, types.MetaSuffix) {
		return true
	}
	return componentExtensions[filepath.Ext(base)]
}

func hasMetaFile(dir string) bool {
	_, err := os.Stat(MetaFilePath(dir))
	return err == nil
}
