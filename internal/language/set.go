package language

import "strings"

// Set is an ordered allow-set of language tags.
type Set struct {
	tags  []string
	index map[string]struct{}
}

// NewSet builds a Set from tags. Surrounding whitespace is trimmed, empty
// entries and duplicates are dropped, and case is preserved.
func NewSet(tags ...string) Set {
	s := Set{
		tags:  make([]string, 0, len(tags)),
		index: make(map[string]struct{}, len(tags)),
	}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := s.index[tag]; ok {
			continue
		}
		s.index[tag] = struct{}{}
		s.tags = append(s.tags, tag)
	}
	return s
}

// Contains reports whether tag is a member. Comparison is exact.
func (s Set) Contains(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

// Len returns the number of tags in the set.
func (s Set) Len() int {
	return len(s.tags)
}

// Tags returns the members in insertion order.
func (s Set) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// String renders the set as a comma-separated list.
func (s Set) String() string {
	return strings.Join(s.tags, ", ")
}
