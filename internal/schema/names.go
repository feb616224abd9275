package schema

import "sort"

func sortedNames() []string {
	names := make([]string, 0, len(CanonicalMappings))
	for name := range CanonicalMappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
