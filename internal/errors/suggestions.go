package errors

import (
	"fmt"
	"strings"
)

// ValidateChoice checks value against allowed and returns a validation error
// suggesting the closest allowed value when it does not match.
func ValidateChoice(kind, value string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return nil
		}
	}

	err := NewValidationError(ErrCodeInvalidFormat,
		fmt.Sprintf("invalid %s %q, must be one of: %s", kind, value, strings.Join(allowed, ", ")))
	if closest := ClosestMatch(value, allowed); closest != "" {
		err.WithSuggestions(fmt.Sprintf("did you mean %q?", closest))
	}
	return err
}

// ClosestMatch returns the candidate with the smallest edit distance to
// value, or "" when nothing is reasonably close.
func ClosestMatch(value string, candidates []string) string {
	best := ""
	bestDistance := -1
	lower := strings.ToLower(value)
	for _, c := range candidates {
		d := levenshtein(lower, strings.ToLower(c))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = c, d
		}
	}
	if bestDistance < 0 || bestDistance > len(value)/2+1 {
		return ""
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
