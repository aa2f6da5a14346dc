package hector

import "bytes"
import "fmt"
import "sync"

import "github.com/google/btree"
import "github.com/juju/errors"

type fakeColumn struct {
	name  []byte
	value []byte
	clock int64
}

func (c *fakeColumn) Less(than btree.Item) bool {
	return bytes.Compare(c.name, than.(*fakeColumn).name) < 0
}

func (c *fakeColumn) export() Column {
	return Column{
		Name:  append([]byte{}, c.name...),
		Value: append([]byte{}, c.value...),
		Clock: c.clock,
	}
}

type fakeRow struct {
	columns    *btree.BTree
	deleted    bool             // whether the row has been deleted at all
	tombstone  int64            // clock of the latest row deletion, if deleted
	tombstones map[string]int64 // clocks of the latest column deletions
}

func newFakeRow() *fakeRow {
	return &fakeRow{columns: btree.New(16), tombstones: make(map[string]int64)}
}

// shadowed reports whether a write at clock is hidden by an earlier or equal deletion.
func (r *fakeRow) shadowed(name []byte, clock int64) bool {
	if r.deleted && clock <= r.tombstone {
		return true
	}
	tombstone, ok := r.tombstones[string(name)]
	return ok && clock <= tombstone
}

func (r *fakeRow) insert(name, value []byte, clock int64) {
	if r.shadowed(name, clock) {
		return
	}
	probe := &fakeColumn{name: name}
	if existing := r.columns.Get(probe); existing != nil && existing.(*fakeColumn).clock > clock {
		return
	}
	r.columns.ReplaceOrInsert(&fakeColumn{
		name:  append([]byte{}, name...),
		value: append([]byte{}, value...),
		clock: clock,
	})
}

func (r *fakeRow) deleteColumn(name []byte, clock int64) {
	if tombstone, ok := r.tombstones[string(name)]; !ok || clock > tombstone {
		r.tombstones[string(name)] = clock
	}
	probe := &fakeColumn{name: name}
	if existing := r.columns.Get(probe); existing != nil && existing.(*fakeColumn).clock <= clock {
		r.columns.Delete(probe)
	}
}

func (r *fakeRow) delete(clock int64) {
	if !r.deleted || clock > r.tombstone {
		r.deleted = true
		r.tombstone = clock
	}
	var doomed []btree.Item
	r.columns.Ascend(func(item btree.Item) bool {
		if item.(*fakeColumn).clock <= clock {
			doomed = append(doomed, item)
		}
		return true
	})
	for _, item := range doomed {
		r.columns.Delete(item)
	}
}

func (r *fakeRow) slice(slice Slice) []Column {
	columns := make([]Column, 0)
	if len(slice.Names) > 0 {
		wanted := make(map[string]bool, len(slice.Names))
		for _, name := range slice.Names {
			wanted[string(name)] = true
		}
		r.columns.Ascend(func(item btree.Item) bool {
			if col := item.(*fakeColumn); wanted[string(col.name)] {
				columns = append(columns, col.export())
			}
			return true
		})
		return columns
	}

	// Walk from start towards finish in the slice's direction.
	pastFinish := func(col *fakeColumn) bool {
		if slice.Finish == nil {
			return false
		}
		cmp := bytes.Compare(col.name, slice.Finish)
		return (!slice.Reversed && cmp > 0) || (slice.Reversed && cmp < 0)
	}
	visit := func(item btree.Item) bool {
		col := item.(*fakeColumn)
		if pastFinish(col) {
			return false
		}
		columns = append(columns, col.export())
		return len(columns) < slice.Count
	}
	switch {
	case !slice.Reversed && slice.Start == nil:
		r.columns.Ascend(visit)
	case !slice.Reversed:
		r.columns.AscendGreaterOrEqual(&fakeColumn{name: slice.Start}, visit)
	case slice.Start == nil:
		r.columns.Descend(visit)
	default:
		r.columns.DescendLessOrEqual(&fakeColumn{name: slice.Start}, visit)
	}
	return columns
}

// FakeSession is an in-memory imitation of a store session, for testing. Rows live in memory
// only, and every executed batch is recorded so tests can inspect what was flushed and when.
//
// Writes and deletes are reconciled by clock: a deletion removes data written at or before its
// clock, and shadows later arriving writes with an older clock. Column names are ordered by their
// encoded bytes.
type FakeSession struct {
	mu         sync.Mutex
	families   map[string]map[string]*fakeRow
	clock      int64
	clockCalls int
	flushes    [][]Mutation
	failures   []error
}

// NewFakeSession returns an empty FakeSession. Its clocks count up from 1.
func NewFakeSession() *FakeSession {
	return &FakeSession{families: make(map[string]map[string]*fakeRow)}
}

func (s *FakeSession) CreateClock() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clockCalls++
	s.clock++
	return s.clock
}

// ClockCalls returns the number of times CreateClock has been called.
func (s *FakeSession) ClockCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clockCalls
}

// FailNext makes the next call to Execute fail with err, without applying any mutations.
// Failures queue up if FailNext is called repeatedly.
func (s *FakeSession) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, err)
}

// Flushes returns a copy of every batch passed to Execute, including failed ones, in order.
func (s *FakeSession) Flushes() [][]Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	flushes := make([][]Mutation, len(s.flushes))
	for i, batch := range s.flushes {
		flushes[i] = append([]Mutation{}, batch...)
	}
	return flushes
}

// FlushCount returns the number of calls to Execute.
func (s *FakeSession) FlushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flushes)
}

// Execute applies the batch atomically: if any mutation is malformed, none are applied.
func (s *FakeSession) Execute(mutations []Mutation) (MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes = append(s.flushes, append([]Mutation{}, mutations...))
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return MutationResult{}, err
	}
	for i, m := range mutations {
		if err := validateMutation(m); err != nil {
			return MutationResult{}, fmt.Errorf("fake: mutation %d: %w", i, err)
		}
	}
	for _, m := range mutations {
		row := s.row(m.ColumnFamily, m.Key, true)
		switch {
		case m.Kind == Insertion:
			row.insert(m.Name, m.Value, m.Clock)
		case m.RowDeletion():
			row.delete(m.Clock)
		default:
			row.deleteColumn(m.Name, m.Clock)
		}
	}
	return MutationResult{Count: len(mutations), Attempts: 1}, nil
}

func validateMutation(m Mutation) error {
	switch {
	case m.ColumnFamily == "":
		return errors.New("no column family")
	case m.Key == nil:
		return errors.New("no row key")
	case m.Kind == Insertion && m.Name == nil:
		return errors.New("insertion without a column name")
	}
	return nil
}

// Slice reads columns of a row. A range read with a count below one is rejected.
func (s *FakeSession) Slice(columnFamily string, key []byte, slice Slice) ([]Column, error) {
	if len(slice.Names) == 0 && slice.Count < 1 {
		return nil, fmt.Errorf("fake: invalid slice count %d", slice.Count)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.row(columnFamily, key, false)
	if row == nil {
		return []Column{}, nil
	}
	return row.slice(slice), nil
}

// CreateColumnFamily creates an empty column family. In a FakeSession, column families also spring
// into existence on first write.
func (s *FakeSession) CreateColumnFamily(columnFamily string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.families[columnFamily]; ok {
		return errors.AlreadyExistsf("column family %s", columnFamily)
	}
	s.families[columnFamily] = make(map[string]*fakeRow)
	return nil
}

// Row returns every live column of a row, in name order.
func (s *FakeSession) Row(columnFamily string, key []byte) []Column {
	columns, _ := s.Slice(columnFamily, key, Slice{Count: AllColumnsCount})
	return columns
}

func (s *FakeSession) row(columnFamily string, key []byte, create bool) *fakeRow {
	family, ok := s.families[columnFamily]
	if !ok {
		if !create {
			return nil
		}
		family = make(map[string]*fakeRow)
		s.families[columnFamily] = family
	}
	row, ok := family[string(key)]
	if !ok && create {
		row = newFakeRow()
		family[string(key)] = row
	}
	return row
}
