package ecs

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// EntitySet is a set of entity indices backed by a 32-bit Roaring Bitmap.
// It wraps the official roaring implementation.
// Used for the world's live set, per-storage owner sets, and query
// intersection.
type EntitySet struct {
	rb *roaring.Bitmap
}

// NewEntitySet creates a new empty entity set.
func NewEntitySet() *EntitySet {
	return &EntitySet{
		rb: roaring.New(),
	}
}

// Add adds an entity index to the set.
func (s *EntitySet) Add(idx uint32) {
	s.rb.Add(idx)
}

// Remove removes an entity index from the set.
func (s *EntitySet) Remove(idx uint32) {
	s.rb.Remove(idx)
}

// Contains checks if an entity index is in the set.
func (s *EntitySet) Contains(idx uint32) bool {
	return s.rb.Contains(idx)
}

// IsEmpty returns true if the set is empty.
func (s *EntitySet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Len returns the number of indices in the set.
func (s *EntitySet) Len() int {
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *EntitySet) Clone() *EntitySet {
	return &EntitySet{
		rb: s.rb.Clone(),
	}
}

// And returns the intersection of s and other as a new set.
// Neither input is modified.
func (s *EntitySet) And(other *EntitySet) *EntitySet {
	return &EntitySet{
		rb: roaring.And(s.rb, other.rb),
	}
}

// All returns an iterator over the indices in the set, in ascending order.
func (s *EntitySet) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
