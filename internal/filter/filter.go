package filter

import (
	"strings"
)

type Result struct {
	Destinations []string
	NoResults    bool
}

// Apply returns the catalog entries containing query, ignoring case, in
// catalog order. An empty query returns the whole catalog. NoResults is only
// set for a non-empty query that matched nothing.
func Apply(catalog []string, query string) Result {
	if query == "" {
		result := make([]string, len(catalog))
		copy(result, catalog)
		return Result{Destinations: result}
	}

	needle := strings.ToLower(query)
	result := make([]string, 0, len(catalog))

	for _, d := range catalog {
		if matches(d, needle) {
			result = append(result, d)
		}
	}

	return Result{
		Destinations: result,
		NoResults:    len(result) == 0,
	}
}

func matches(destination, needle string) bool {
	return strings.Contains(strings.ToLower(destination), needle)
}
