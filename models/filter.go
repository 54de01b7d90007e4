package models

// CategoryFilter is a collection-wide set of labels narrowing which items a
// session considers. It is supplied at session start and never persisted.
type CategoryFilter []string

// Empty reports whether the filter has no labels. An empty filter matches
// everything.
func (f CategoryFilter) Empty() bool {
	return len(f) == 0
}

// Match reports whether an item carrying categories passes the filter: the
// filter is empty, or at least one of the categories is in the filter.
func (f CategoryFilter) Match(categories []string) bool {
	if f.Empty() {
		return true
	}

	for _, c := range categories {
		for _, label := range f {
			if c == label {
				return true
			}
		}
	}
	return false
}
