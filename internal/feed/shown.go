package feed

// ShownSet holds the article IDs already placed on the page. It is never
// mutated in place: With returns a new set. The zero value is empty.
type ShownSet struct {
	ids map[string]struct{}
}

// NewShownSet builds a set from ids.
func NewShownSet(ids ...string) ShownSet {
	return ShownSet{}.With(ids...)
}

// With returns a copy of s extended with ids.
func (s ShownSet) With(ids ...string) ShownSet {
	next := make(map[string]struct{}, len(s.ids)+len(ids))
	for id := range s.ids {
		next[id] = struct{}{}
	}
	for _, id := range ids {
		next[id] = struct{}{}
	}
	return ShownSet{ids: next}
}

// Has reports membership.
func (s ShownSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s ShownSet) Len() int {
	return len(s.ids)
}
