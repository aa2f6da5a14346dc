package hector

import "math"

const (
	// DefaultCount is the column limit of a new SlicePredicate.
	DefaultCount = 100

	// AllColumnsCount asks for every column in range mode.
	AllColumnsCount = math.MaxInt32
)

// A SlicePredicate selects which columns of a row a read returns.
//
// When column names have been added, the predicate is name based: exactly those columns are
// selected, and the range and count are ignored. Otherwise the predicate selects the columns
// between start and finish (either may be open), in reverse order if reversed, returning at most
// count columns.
//
// The count is passed through to the session unchecked.
type SlicePredicate[N comparable] struct {
	names    []N
	seen     map[N]struct{}
	start    *N
	finish   *N
	reversed bool
	count    int
}

// NewSlicePredicate returns an open range predicate limited to DefaultCount columns.
func NewSlicePredicate[N comparable]() *SlicePredicate[N] {
	return &SlicePredicate[N]{count: DefaultCount}
}

// AddColumnName adds name to the selected names. Adding a name already present has no effect.
func (p *SlicePredicate[N]) AddColumnName(name N) *SlicePredicate[N] {
	if p.seen == nil {
		p.seen = make(map[N]struct{})
	}
	if _, ok := p.seen[name]; !ok {
		p.seen[name] = struct{}{}
		p.names = append(p.names, name)
	}
	return p
}

// SetColumnNames replaces the selected names.
func (p *SlicePredicate[N]) SetColumnNames(names ...N) *SlicePredicate[N] {
	p.ClearColumnNames()
	for _, name := range names {
		p.AddColumnName(name)
	}
	return p
}

// ClearColumnNames drops all selected names, returning the predicate to range mode.
func (p *SlicePredicate[N]) ClearColumnNames() *SlicePredicate[N] {
	p.names = nil
	p.seen = nil
	return p
}

// SetRange sets both bounds of the range, the direction and the count.
func (p *SlicePredicate[N]) SetRange(start, finish N, reversed bool, count int) *SlicePredicate[N] {
	p.start = &start
	p.finish = &finish
	p.reversed = reversed
	p.count = count
	return p
}

func (p *SlicePredicate[N]) SetStart(start N) *SlicePredicate[N] {
	p.start = &start
	return p
}

func (p *SlicePredicate[N]) SetFinish(finish N) *SlicePredicate[N] {
	p.finish = &finish
	return p
}

func (p *SlicePredicate[N]) SetReversed(reversed bool) *SlicePredicate[N] {
	p.reversed = reversed
	return p
}

// OpenRange removes both bounds of the range.
func (p *SlicePredicate[N]) OpenRange() *SlicePredicate[N] {
	p.start = nil
	p.finish = nil
	return p
}

// SetCount sets the maximum number of columns returned by a range read.
func (p *SlicePredicate[N]) SetCount(count int) *SlicePredicate[N] {
	p.count = count
	return p
}

func (p *SlicePredicate[N]) Count() int     { return p.count }
func (p *SlicePredicate[N]) Reversed() bool { return p.reversed }

// NameBased reports whether the predicate selects columns by name.
func (p *SlicePredicate[N]) NameBased() bool {
	return len(p.names) > 0
}

// ColumnNames returns the selected names in the order they were added.
func (p *SlicePredicate[N]) ColumnNames() []N {
	names := make([]N, len(p.names))
	copy(names, p.names)
	return names
}

// Start returns the start bound, if there is one.
func (p *SlicePredicate[N]) Start() (N, bool) {
	if p.start == nil {
		var zero N
		return zero, false
	}
	return *p.start, true
}

// Finish returns the finish bound, if there is one.
func (p *SlicePredicate[N]) Finish() (N, bool) {
	if p.finish == nil {
		var zero N
		return zero, false
	}
	return *p.finish, true
}

// Clone returns an independent copy of the predicate.
func (p *SlicePredicate[N]) Clone() *SlicePredicate[N] {
	c := &SlicePredicate[N]{reversed: p.reversed, count: p.count}
	if start, ok := p.Start(); ok {
		c.start = &start
	}
	if finish, ok := p.Finish(); ok {
		c.finish = &finish
	}
	for _, name := range p.names {
		c.AddColumnName(name)
	}
	return c
}

// Slice is the encoded form of a SlicePredicate, as handed to a Session. Names is non-empty for a
// name based read, in which case the other fields are ignored. A nil Start or Finish is an open
// bound.
type Slice struct {
	Names    [][]byte
	Start    []byte
	Finish   []byte
	Reversed bool
	Count    int
}

func (p *SlicePredicate[N]) encode(codec Codec[N]) (Slice, error) {
	var slice Slice
	if p.NameBased() {
		slice.Names = make([][]byte, len(p.names))
		for i, name := range p.names {
			b, err := encodeName(codec, name)
			if err != nil {
				return Slice{}, err
			}
			slice.Names[i] = b
		}
		return slice, nil
	}
	var err error
	if p.start != nil {
		if slice.Start, err = encodeName(codec, *p.start); err != nil {
			return Slice{}, err
		}
	}
	if p.finish != nil {
		if slice.Finish, err = encodeName(codec, *p.finish); err != nil {
			return Slice{}, err
		}
	}
	slice.Reversed = p.reversed
	slice.Count = p.count
	return slice, nil
}

// encodeName maps an empty encoding to a non-nil slice. A nil name on a deletion means the whole
// row.
func encodeName[N any](codec Codec[N], name N) ([]byte, error) {
	b, err := codec.Encode(name)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}
