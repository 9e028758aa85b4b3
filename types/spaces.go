package types

import (
	"sort"

	"github.com/zeu5/bsuite-rl-test/prng"
)

// Space describes the set of values an environment produces or accepts.
// Spaces are introspection descriptors, the environments themselves
// never consult them.
type Space interface {
	// Contains checks that the flattened value lies in the space
	Contains(v []float64) bool
	// Sample draws a uniform element of the space from the key
	Sample(key prng.Key) []float64
}

// Discrete is the space {0, 1, ..., N-1}
type Discrete struct {
	N int
}

var _ Space = Discrete{}

func (d Discrete) Contains(v []float64) bool {
	if len(v) != 1 {
		return false
	}
	i := int(v[0])
	return float64(i) == v[0] && i >= 0 && i < d.N
}

func (d Discrete) Sample(key prng.Key) []float64 {
	return []float64{float64(key.Uintn(d.N))}
}

// Box is a bounded vector space of shape (Rows, Cols) with all
// entries in [Low, High]
type Box struct {
	Low  float64
	High float64
	Rows int
	Cols int
}

var _ Space = Box{}

func (b Box) Contains(v []float64) bool {
	if len(v) != b.Rows*b.Cols {
		return false
	}
	for _, x := range v {
		if x < b.Low || x > b.High {
			return false
		}
	}
	return true
}

func (b Box) Sample(key prng.Key) []float64 {
	out := make([]float64, b.Rows*b.Cols)
	for i, k := range key.Split(len(out)) {
		out[i] = b.Low + k.Float64()*(b.High-b.Low)
	}
	return out
}

// Dict is a named product of spaces. Flattened values are ordered by
// the sorted field names.
type Dict struct {
	Spaces map[string]Space
}

var _ Space = Dict{}

func (d Dict) sortedKeys() []string {
	keys := make([]string, 0, len(d.Spaces))
	for k := range d.Spaces {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d Dict) Contains(v []float64) bool {
	offset := 0
	for _, name := range d.sortedKeys() {
		space := d.Spaces[name]
		width := spaceWidth(space)
		if offset+width > len(v) {
			return false
		}
		if !space.Contains(v[offset : offset+width]) {
			return false
		}
		offset += width
	}
	return offset == len(v)
}

func (d Dict) Sample(key prng.Key) []float64 {
	names := d.sortedKeys()
	out := make([]float64, 0)
	for i, k := range key.Split(len(names)) {
		out = append(out, d.Spaces[names[i]].Sample(k)...)
	}
	return out
}

func spaceWidth(s Space) int {
	switch v := s.(type) {
	case Discrete:
		return 1
	case Box:
		return v.Rows * v.Cols
	case Dict:
		width := 0
		for _, inner := range v.Spaces {
			width += spaceWidth(inner)
		}
		return width
	}
	return 0
}
