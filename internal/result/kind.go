package result

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies a category of failure carried by a failed Result
type Kind string

// KindSet is a closed set of kinds an operation may fail with
type KindSet struct {
	kinds map[Kind]struct{}
}

// NewKindSet creates a set from the given kinds
func NewKindSet(kinds ...Kind) KindSet {
	s := KindSet{kinds: make(map[Kind]struct{}, len(kinds))}
	for _, k := range kinds {
		s.kinds[k] = struct{}{}
	}
	return s
}

// Union returns the set of every kind in any of the given sets.
// An operation composed of several dependencies declares its kind set as
// the union of theirs, so a kind added to a dependency widens every caller.
func Union(sets ...KindSet) KindSet {
	u := KindSet{kinds: make(map[Kind]struct{})}
	for _, s := range sets {
		for k := range s.kinds {
			u.kinds[k] = struct{}{}
		}
	}
	return u
}

// Contains reports whether k is in the set
func (s KindSet) Contains(k Kind) bool {
	_, ok := s.kinds[k]
	return ok
}

// Len returns the number of kinds in the set
func (s KindSet) Len() int {
	return len(s.kinds)
}

// Kinds returns the kinds in lexical order
func (s KindSet) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.kinds))
	for k := range s.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// String returns the kinds joined with "|"
func (s KindSet) String() string {
	parts := make([]string, 0, len(s.kinds))
	for _, k := range s.Kinds() {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, "|")
}

// Matcher maps every kind of a set to a value of type T
type Matcher[T any] struct {
	set   KindSet
	cases map[Kind]T
}

// Exhaustive builds a matcher over set. It panics when a kind of set has no
// case or when a case names a kind outside of set, so matchers declared as
// package variables fail at initialisation as soon as a dependency's kind
// set changes.
func Exhaustive[T any](set KindSet, cases map[Kind]T) Matcher[T] {
	var missing, extra []string
	for _, k := range set.Kinds() {
		if _, ok := cases[k]; !ok {
			missing = append(missing, string(k))
		}
	}
	for k := range cases {
		if !set.Contains(k) {
			extra = append(extra, string(k))
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(extra)
		panic(fmt.Sprintf("result: non-exhaustive matcher (missing: %v, unknown: %v)", missing, extra))
	}

	m := Matcher[T]{set: set, cases: make(map[Kind]T, len(cases))}
	for k, v := range cases {
		m.cases[k] = v
	}
	return m
}

// Match returns the case for k. ok is false only when k is outside the set.
func (m Matcher[T]) Match(k Kind) (T, bool) {
	v, ok := m.cases[k]
	return v, ok
}

// Set returns the set the matcher covers
func (m Matcher[T]) Set() KindSet {
	return m.set
}
