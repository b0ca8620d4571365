package promptsub

import "sort"

// StringSet is a set of variable keys.
type StringSet map[string]struct{}

// NewStringSet creates a set containing the given keys.
func NewStringSet(keys ...string) StringSet {
	s := make(StringSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is in the set.
func (s StringSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Add inserts key into the set.
func (s StringSet) Add(key string) {
	s[key] = struct{}{}
}

// Values returns the keys in sorted order.
func (s StringSet) Values() []string {
	values := make([]string, 0, len(s))
	for k := range s {
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}

// RequiredAndOptional describes the variables of one fallback
// alternative: Required holds the keys of the alternative's direct
// (top-level) variables, Optional the keys that only appear inside its
// nested optional sections, however deeply.
type RequiredAndOptional struct {
	Required StringSet
	Optional StringSet
}
