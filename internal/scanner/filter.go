package scanner

import (
	"path/filepath"
	"strings"

	"github.com/conneroisu/lwcswitch/internal/types"
)

// FilterComponentFiles keeps the candidates that belong to componentName,
// dropping trigger itself. Files in the __tests__ folder match when their
// name contains componentName anywhere; other files must start with
// "<componentName>." or be the component's metadata file. Input order is
// preserved.
func FilterComponentFiles(candidates []string, componentName, trigger string) []string {
	filtered := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == trigger {
			continue
		}
		if belongsTo(candidate, componentName) {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

func belongsTo(candidate, componentName string) bool {
	name := filepath.Base(candidate)

	if types.InTestsDir(candidate) {
		return strings.Contains(name, componentName)
	}

	return strings.HasPrefix(name, componentName+".") ||
		name == componentName+types.MetaSuffix
}
