package hector

// A Template provides typed reads, writes and deletes over a single column family, for rows keyed
// by K holding columns named by N.
//
// By default every write or delete staged through a caller supplied Mutator is executed at the
// end of the operation. With SetBatched(true), those operations only stage their mutations, and
// the caller executes the batch with ExecuteBatch when it is ready. The single-key operations,
// such as DeleteRow(key), always execute immediately.
//
// A Template is not safe for concurrent configuration. Configure it first, then either share it
// read-only, or hand each goroutine its own Clone. Concurrent operations must each use their own
// Mutator.
type Template[K any, N comparable] struct {
	session      Session
	columnFamily string
	keys         Codec[K]
	names        Codec[N]
	codecs       map[N]ValueCodec
	predicate    *SlicePredicate[N]
	batched      bool
	clock        int64
	hasClock     bool
	translator   ExceptionsTranslator
}

// New returns a template over columnFamily, reading and writing through session.
func New[K any, N comparable](session Session, columnFamily string, keys Codec[K], names Codec[N]) *Template[K, N] {
	t := &Template[K, N]{
		session:      session,
		columnFamily: columnFamily,
		keys:         keys,
		names:        names,
		codecs:       make(map[N]ValueCodec),
		predicate:    NewSlicePredicate[N](),
	}
	t.SetCount(DefaultCount)
	return t
}

// Clone returns a copy of the template whose configuration can be changed independently.
func (t *Template[K, N]) Clone() *Template[K, N] {
	c := *t
	c.codecs = make(map[N]ValueCodec, len(t.codecs))
	for name, codec := range t.codecs {
		c.codecs[name] = codec
	}
	c.predicate = t.predicate.Clone()
	return &c
}

func (t *Template[K, N]) Session() Session     { return t.session }
func (t *Template[K, N]) ColumnFamily() string { return t.columnFamily }
func (t *Template[K, N]) KeyCodec() Codec[K]   { return t.keys }
func (t *Template[K, N]) NameCodec() Codec[N]  { return t.names }
func (t *Template[K, N]) Batched() bool        { return t.batched }

// AddColumn registers the codec for a column's values, replacing any earlier registration, and
// adds the column to the names read by QueryColumns.
func (t *Template[K, N]) AddColumn(name N, codec ValueCodec) *Template[K, N] {
	t.codecs[name] = codec
	t.predicate.AddColumnName(name)
	return t
}

// ValueCodec returns the codec registered for a column.
func (t *Template[K, N]) ValueCodec(name N) (ValueCodec, bool) {
	codec, ok := t.codecs[name]
	return codec, ok
}

// SetBatched controls whether operations given a Mutator leave it pending for the caller.
func (t *Template[K, N]) SetBatched(batched bool) *Template[K, N] {
	t.batched = batched
	return t
}

// SetCount sets the number of columns read by QueryColumns when no columns have been added.
func (t *Template[K, N]) SetCount(count int) *Template[K, N] {
	t.predicate.SetCount(count)
	return t
}

// SlicePredicate returns a copy of the predicate used by QueryColumns.
func (t *Template[K, N]) SlicePredicate() *SlicePredicate[N] {
	return t.predicate.Clone()
}

// SetClock fixes the clock given to deletions and updaters.
func (t *Template[K, N]) SetClock(clock int64) *Template[K, N] {
	t.clock = clock
	t.hasClock = true
	return t
}

// ClearClock returns to store generated clocks.
func (t *Template[K, N]) ClearClock() *Template[K, N] {
	t.clock = 0
	t.hasClock = false
	return t
}

// Clock returns the clock set with SetClock, if any.
func (t *Template[K, N]) Clock() (int64, bool) {
	return t.clock, t.hasClock
}

// EffectiveClock returns the clock set with SetClock, or else a new clock from the session. Each
// call without a set clock may return a different value.
func (t *Template[K, N]) EffectiveClock() int64 {
	if t.hasClock {
		return t.clock
	}
	if t.session == nil {
		return 0
	}
	return t.session.CreateClock()
}

// SetExceptionsTranslator installs a translator for errors returned by the session. With no
// translator, which is the default, session errors are returned unchanged.
func (t *Template[K, N]) SetExceptionsTranslator(translator ExceptionsTranslator) *Template[K, N] {
	t.translator = translator
	return t
}

func (t *Template[K, N]) translate(err error) error {
	if err == nil || t.translator == nil {
		return err
	}
	return t.translator.Translate(err)
}

// NewMutator returns an empty Mutator bound to the template's session and key codec.
func (t *Template[K, N]) NewMutator() *Mutator[K] {
	return NewMutator(t.session, t.keys)
}

// ExecuteBatch executes the mutator's pending mutations, then discards them. When execution fails
// the mutations stay pending. Retrying them is only safe if the store applies the batch
// idempotently; if in doubt, discard and rebuild.
func (t *Template[K, N]) ExecuteBatch(m *Mutator[K]) (MutationResult, error) {
	result, err := m.Execute()
	if err != nil {
		return result, t.translate(err)
	}
	m.DiscardPendingMutations()
	return result, nil
}

// executeIfNotBatched returns a nil result when the template is batched.
func (t *Template[K, N]) executeIfNotBatched(m *Mutator[K]) (*MutationResult, error) {
	if t.batched {
		return nil, nil
	}
	result, err := t.ExecuteBatch(m)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteRow deletes every column of the row in a single mutation, regardless of batching.
func (t *Template[K, N]) DeleteRow(key K) error {
	m := t.NewMutator()
	t.stageRowDeletion(m, key)
	_, err := t.ExecuteBatch(m)
	return err
}

// DeleteRowWith stages the row deletion into m, executing it unless the template is batched.
func (t *Template[K, N]) DeleteRowWith(m *Mutator[K], key K) error {
	t.stageRowDeletion(m, key)
	_, err := t.executeIfNotBatched(m)
	return err
}

// DeleteColumn deletes one column in a single mutation, regardless of batching.
func (t *Template[K, N]) DeleteColumn(key K, name N) error {
	m := t.NewMutator()
	t.stageColumnDeletion(m, key, name, t.EffectiveClock())
	_, err := t.ExecuteBatch(m)
	return err
}

// DeleteColumnWith stages the column deletion into m, executing it unless the template is
// batched.
func (t *Template[K, N]) DeleteColumnWith(m *Mutator[K], key K, name N) error {
	t.stageColumnDeletion(m, key, name, t.EffectiveClock())
	_, err := t.executeIfNotBatched(m)
	return err
}

func (t *Template[K, N]) stageRowDeletion(m *Mutator[K], key K) {
	m.AddDeletionAt(key, t.columnFamily, nil, t.EffectiveClock())
}

func (t *Template[K, N]) stageColumnDeletion(m *Mutator[K], key K, name N, clock int64) {
	b, err := encodeName(t.names, name)
	if err != nil {
		m.fail(WrapError("encoding column name", err))
		return
	}
	m.AddDeletionAt(key, t.columnFamily, b, clock)
}

// QueryColumns reads the row with the template's slice predicate: the added columns if there are
// any, else the first SetCount columns.
func (t *Template[K, N]) QueryColumns(key K) (*ColumnFamilyResult[K, N], error) {
	return t.QueryColumnsWith(key, t.predicate)
}

// QueryColumnsWith reads the row with the given predicate.
func (t *Template[K, N]) QueryColumnsWith(key K, predicate *SlicePredicate[N]) (*ColumnFamilyResult[K, N], error) {
	if t.session == nil {
		return nil, ErrNoSession
	}
	k, err := t.keys.Encode(key)
	if err != nil {
		return nil, WrapError("encoding row key", err)
	}
	slice, err := predicate.encode(t.names)
	if err != nil {
		return nil, WrapError("encoding slice predicate", err)
	}
	columns, err := t.session.Slice(t.columnFamily, k, slice)
	if err != nil {
		return nil, t.translate(err)
	}
	return newColumnFamilyResult(t, key, columns)
}

// Update executes the updater's mutator unless the template is batched.
func (t *Template[K, N]) Update(u *Updater[K, N]) error {
	_, err := t.executeIfNotBatched(u.Mutator())
	return err
}
