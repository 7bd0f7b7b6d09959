package scanner

import (
	"cmp"
	"slices"

	"github.com/conneroisu/lwcswitch/internal/types"
)

// Rank classifies files and orders them by kind priority. The sort is
// stable: files with equal priority keep their input order.
func Rank(files []string) []types.RelatedFile {
	ranked := make([]types.RelatedFile, len(files))
	for i, file := range files {
		ranked[i] = types.NewRelatedFile(file)
	}

	slices.SortStableFunc(ranked, func(a, b types.RelatedFile) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return ranked
}
