package hector

import "time"

// A Session is the store collaborator that templates issue their work through. It owns transport,
// pooling, retries and timeouts; templates only decide what is sent and when.
type Session interface {
	ClockSource

	// Execute applies a batch of mutations as one unit.
	Execute(mutations []Mutation) (MutationResult, error)

	// Slice reads the columns of one row selected by slice.
	Slice(columnFamily string, key []byte, slice Slice) ([]Column, error)
}

type MutationKind int

const (
	Insertion MutationKind = iota
	Deletion
)

func (k MutationKind) String() string {
	if k == Deletion {
		return "deletion"
	}
	return "insertion"
}

// A Mutation is one staged write or delete, with its row key and column name already encoded.
type Mutation struct {
	Kind         MutationKind
	Key          []byte
	ColumnFamily string
	Name         []byte // On a deletion, nil means every column of the row.
	Value        []byte
	Clock        int64
	TTL          int // Seconds; zero means the column does not expire.
}

// RowDeletion reports whether the mutation deletes a whole row.
func (m Mutation) RowDeletion() bool {
	return m.Kind == Deletion && m.Name == nil
}

// A Column is one column of a row as returned by a slice read.
type Column struct {
	Name  []byte
	Value []byte
	Clock int64
}

// MutationResult is the store's acknowledgement of an executed batch.
type MutationResult struct {
	Count         int           // Number of mutations sent.
	Attempts      int           // Number of times the batch was sent, including retries.
	ExecutionTime time.Duration // Time spent waiting on the store.
}
