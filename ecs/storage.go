package ecs

// componentStorage is the type-erased view of a per-type sparse set, enough
// for the world to evict a destroyed entity from every slot it occupies.
type componentStorage interface {
	removeIndex(idx uint32) bool
}

// sparseSet is the per-component-type storage: a dense payload array plus a
// dense owner array, indexed through a sparse entity-index map, with a
// Roaring owner set for iteration and intersection. Removal is swap-remove,
// so dense order is not stable.
type sparseSet[C any] struct {
	dense  []C
	owners []uint32
	sparse map[uint32]int
	set    *EntitySet
}

func newSparseSet[C any]() *sparseSet[C] {
	return &sparseSet[C]{
		sparse: make(map[uint32]int),
		set:    NewEntitySet(),
	}
}

// put inserts or overwrites the component for the given entity index.
func (s *sparseSet[C]) put(idx uint32, c C) {
	if pos, ok := s.sparse[idx]; ok {
		s.dense[pos] = c
		return
	}
	s.sparse[idx] = len(s.dense)
	s.dense = append(s.dense, c)
	s.owners = append(s.owners, idx)
	s.set.Add(idx)
}

// ref returns a pointer into dense storage for in-place mutation.
// The pointer is invalidated by the next put or removeIndex.
func (s *sparseSet[C]) ref(idx uint32) (*C, bool) {
	pos, ok := s.sparse[idx]
	if !ok {
		return nil, false
	}
	return &s.dense[pos], true
}

func (s *sparseSet[C]) get(idx uint32) (C, bool) {
	pos, ok := s.sparse[idx]
	if !ok {
		var zero C
		return zero, false
	}
	return s.dense[pos], true
}

func (s *sparseSet[C]) hasIndex(idx uint32) bool {
	_, ok := s.sparse[idx]
	return ok
}

func (s *sparseSet[C]) removeIndex(idx uint32) bool {
	pos, ok := s.sparse[idx]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if pos != last {
		s.dense[pos] = s.dense[last]
		s.owners[pos] = s.owners[last]
		s.sparse[s.owners[pos]] = pos
	}
	var zero C
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	delete(s.sparse, idx)
	s.set.Remove(idx)
	return true
}

func (s *sparseSet[C]) ownerSet() *EntitySet { return s.set }
