package domain

import "sort"

// AdditionBatch groups newly seen item names by category.
// Categories keep first-seen order and items keep discovery order.
type AdditionBatch struct {
	order []string
	items map[string][]string
}

// NewAdditionBatch creates an empty batch
func NewAdditionBatch() AdditionBatch {
	return AdditionBatch{items: make(map[string][]string)}
}

// Add appends an item under a category
func (b *AdditionBatch) Add(category, item string) {
	if b.items == nil {
		b.items = make(map[string][]string)
	}
	if _, ok := b.items[category]; !ok {
		b.order = append(b.order, category)
	}
	b.items[category] = append(b.items[category], item)
}

// Categories returns the categories in first-seen order
func (b AdditionBatch) Categories() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Items returns the items recorded for a category
func (b AdditionBatch) Items(category string) []string {
	return b.items[category]
}

// Has reports whether the batch has an entry for category
func (b AdditionBatch) Has(category string) bool {
	_, ok := b.items[category]
	return ok
}

// IsEmpty reports whether the batch holds no categories
func (b AdditionBatch) IsEmpty() bool {
	return len(b.order) == 0
}

// Len returns the total number of items across all categories
func (b AdditionBatch) Len() int {
	n := 0
	for _, items := range b.items {
		n += len(items)
	}
	return n
}

// Delta is the outcome of diffing a listing against a Snapshot
type Delta struct {
	Added   AdditionBatch
	Removed []string // Sorted paths retired from the snapshot
}

// Snapshot is the set of paths known as of the last cycle.
// It is not safe for concurrent use; the engine owning it serializes access.
type Snapshot struct {
	paths map[string]struct{}
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{paths: make(map[string]struct{})}
}

// Has reports whether path is in the snapshot
func (s *Snapshot) Has(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of tracked paths
func (s *Snapshot) Len() int {
	return len(s.paths)
}

// Paths returns the tracked paths, sorted
func (s *Snapshot) Paths() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Diff records every path in current that the snapshot has not seen yet and
// returns those additions grouped by category. Paths missing from current are
// then dropped from the snapshot; removals never produce additions.
func (s *Snapshot) Diff(root string, current []string) Delta {
	delta := Delta{Added: NewAdditionBatch()}
	present := make(map[string]struct{}, len(current))

	for _, p := range current {
		present[p] = struct{}{}
		if s.Has(p) {
			continue
		}
		delta.Added.Add(CategoryOf(p, root), ItemName(p))
		s.paths[p] = struct{}{}
	}

	for p := range s.paths {
		if _, ok := present[p]; !ok {
			delete(s.paths, p)
			delta.Removed = append(delta.Removed, p)
		}
	}
	sort.Strings(delta.Removed)

	return delta
}
