package hector

// A Mutator accumulates mutations on rows keyed by K until Execute sends them to its session as
// a single batch.
//
// Staging never fails. If a key cannot be encoded, the first such error is kept and returned by
// Execute, and the mutation is dropped. A Mutator is not safe for concurrent use.
type Mutator[K any] struct {
	session Session
	keys    Codec[K]
	pending []Mutation
	err     error
}

func NewMutator[K any](session Session, keys Codec[K]) *Mutator[K] {
	return &Mutator[K]{session: session, keys: keys}
}

// AddDeletion stages the deletion of one column, or of the whole row if name is nil. The deletion
// is stamped with a fresh clock from the session.
func (m *Mutator[K]) AddDeletion(key K, columnFamily string, name []byte) *Mutator[K] {
	return m.AddDeletionAt(key, columnFamily, name, m.createClock())
}

// AddDeletionAt is AddDeletion with an explicit clock.
func (m *Mutator[K]) AddDeletionAt(key K, columnFamily string, name []byte, clock int64) *Mutator[K] {
	k, ok := m.encodeKey(key)
	if !ok {
		return m
	}
	m.pending = append(m.pending, Mutation{
		Kind:         Deletion,
		Key:          k,
		ColumnFamily: columnFamily,
		Name:         name,
		Clock:        clock,
	})
	return m
}

// AddInsertion stages a column write. A ttl of zero means the column never expires.
func (m *Mutator[K]) AddInsertion(key K, columnFamily string, name, value []byte, clock int64, ttl int) *Mutator[K] {
	k, ok := m.encodeKey(key)
	if !ok {
		return m
	}
	if name == nil {
		name = []byte{}
	}
	m.pending = append(m.pending, Mutation{
		Kind:         Insertion,
		Key:          k,
		ColumnFamily: columnFamily,
		Name:         name,
		Value:        value,
		Clock:        clock,
		TTL:          ttl,
	})
	return m
}

// Execute sends the pending mutations to the session. The pending mutations are kept, whether or
// not the store accepted them; call DiscardPendingMutations to drop them. An empty mutator does
// not contact the store.
func (m *Mutator[K]) Execute() (MutationResult, error) {
	if m.err != nil {
		return MutationResult{}, m.err
	}
	if m.session == nil {
		return MutationResult{}, ErrNoSession
	}
	if len(m.pending) == 0 {
		return MutationResult{}, nil
	}
	return m.session.Execute(m.Pending())
}

// DiscardPendingMutations drops all pending mutations and any staging error.
func (m *Mutator[K]) DiscardPendingMutations() {
	m.pending = nil
	m.err = nil
}

// Pending returns a copy of the pending mutations in the order they were staged.
func (m *Mutator[K]) Pending() []Mutation {
	pending := make([]Mutation, len(m.pending))
	copy(pending, m.pending)
	return pending
}

func (m *Mutator[K]) Len() int   { return len(m.pending) }
func (m *Mutator[K]) Err() error { return m.err }

func (m *Mutator[K]) createClock() int64 {
	if m.session == nil {
		return 0
	}
	return m.session.CreateClock()
}

func (m *Mutator[K]) encodeKey(key K) ([]byte, bool) {
	b, err := m.keys.Encode(key)
	if err != nil {
		m.fail(WrapError("encoding row key", err))
		return nil, false
	}
	if b == nil {
		b = []byte{}
	}
	return b, true
}

func (m *Mutator[K]) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}
