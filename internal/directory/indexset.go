// Package directory implements the sub-block directory described in
// spec §4.5: three variants (read-only, writer, reader-writer) behind a
// common query interface, plus the supporting IndexSet and Entry types.
package directory

// IndexSet is a small integer-set abstraction (Supplemented Feature #4,
// grounded on original_source/Src/libCZI/IndexSet.h) used for the
// accessors' scene_filter option (spec §4.8). The accessors treat a nil
// *IndexSet as "no filter" and skip the membership test entirely, matching
// the "when that filter is present" wording in spec §4.8 — absence of a
// filter is not the same as an empty filter.
type IndexSet struct {
	members map[int]struct{}
}

// NewIndexSet builds an IndexSet containing the given values.
func NewIndexSet(values ...int) *IndexSet {
	s := &IndexSet{members: make(map[int]struct{}, len(values))}
	for _, v := range values {
		s.members[v] = struct{}{}
	}
	return s
}

// Add inserts a value into the set.
func (s *IndexSet) Add(v int) {
	if s.members == nil {
		s.members = make(map[int]struct{})
	}
	s.members[v] = struct{}{}
}

// Contains reports whether a nil-safe IndexSet contains v. A nil IndexSet
// contains nothing; callers that want "no filter" behavior should pass a nil
// *IndexSet pointer at the call site, not an empty-but-non-nil one.
func (s *IndexSet) Contains(v int) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[v]
	return ok
}

// Len reports the number of members.
func (s *IndexSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}
