// Package strings parses comma-separated configuration lists.
package strings

import (
	"strings"
)

// SplitList splits raw on commas, trims each element and drops empty and
// repeated ones. Order is preserved.
//
//	SplitList(" k1, ,k2,k1 ") // []string{"k1", "k2"}
func SplitList(raw string) []string {
	return dedupe(strings.Split(raw, ","), strings.TrimSpace)
}

// SplitListUpper is SplitList for identifiers compared case-insensitively,
// such as provider IDs.
func SplitListUpper(raw string) []string {
	return dedupe(strings.Split(raw, ","), func(s string) string {
		return strings.ToUpper(strings.TrimSpace(s))
	})
}

func dedupe(values []string, norm func(string) string) []string {
	seen := make(map[string]struct{}, len(values))
	var result []string
	for _, v := range values {
		v = norm(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
