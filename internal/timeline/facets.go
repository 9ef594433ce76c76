package timeline

import (
	"fmt"
	"strings"

	"ostimeline/internal/model"
)

// ParseTypes maps case-insensitive type names to a Set.
func ParseTypes(names []string) (Set[model.EntryType], error) {
	return parseFacet(names, model.Types, "type")
}

// ParseFamilies maps case-insensitive family names to a Set.
func ParseFamilies(names []string) (Set[model.Family], error) {
	return parseFacet(names, model.Families, "family")
}

func parseFacet[T ~string](names []string, universe []T, kind string) (Set[T], error) {
	out := make(Set[T], len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v, ok := lookupFold(name, universe)
		if !ok {
			return nil, fmt.Errorf("unknown %s %q (valid: %s)", kind, name, joinValues(universe))
		}
		out[v] = struct{}{}
	}
	return out, nil
}

func lookupFold[T ~string](name string, universe []T) (T, bool) {
	for _, v := range universe {
		if strings.EqualFold(string(v), name) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
