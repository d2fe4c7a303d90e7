package filter

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// Selection is a set of unique row indices. Iteration is always in
// ascending order. The zero value is not usable; call NewSelection.
type Selection struct {
	bm *roaring.Bitmap
}

// NewSelection returns a selection holding the given indices. Indices
// outside [0, types.MaxIndex] are ignored.
func NewSelection(indices ...int) *Selection {
	s := &Selection{bm: roaring.New()}
	for _, i := range indices {
		if storable(i) {
			s.bm.Add(uint32(i))
		}
	}
	return s
}

// Len returns the number of selected indices.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}

// Contains reports whether i is selected.
func (s *Selection) Contains(i int) bool {
	if s == nil || !storable(i) {
		return false
	}
	return s.bm.Contains(uint32(i))
}

// Indices returns the selected indices in ascending order.
func (s *Selection) Indices() []int {
	if s == nil {
		return nil
	}
	arr := s.bm.ToArray()
	out := make([]int, len(arr))
	for i, x := range arr {
		out[i] = int(x)
	}
	return out
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	if s == nil {
		return NewSelection()
	}
	return &Selection{bm: s.bm.Clone()}
}

func (s *Selection) union(other *roaring.Bitmap) {
	s.bm.Or(other)
}

func (s *Selection) subtract(other *roaring.Bitmap) {
	s.bm.AndNot(other)
}

func (s *Selection) remove(i int) {
	if storable(i) {
		s.bm.Remove(uint32(i))
	}
}

func storable(i int) bool {
	return i >= 0 && int64(i) <= types.MaxIndex
}
