package hector

import "fmt"

// An Updater stages column writes and deletes for one row at a time into a Mutator. Every
// mutation for a row carries the clock taken when the row was selected with AddKey.
//
// Like staging on a Mutator, staging on an Updater never fails. Errors, including writes to
// columns with no registered codec, are reported when the mutator is executed.
type Updater[K any, N comparable] struct {
	template *Template[K, N]
	mutator  *Mutator[K]
	key      K
	clock    int64
	ttl      int
}

// NewUpdater returns an updater for key with its own Mutator.
func (t *Template[K, N]) NewUpdater(key K) *Updater[K, N] {
	return t.NewUpdaterWith(t.NewMutator(), key)
}

// NewUpdaterWith returns an updater for key that stages into m.
func (t *Template[K, N]) NewUpdaterWith(m *Mutator[K], key K) *Updater[K, N] {
	u := &Updater[K, N]{template: t, mutator: m}
	return u.AddKey(key)
}

// AddKey moves the updater to another row, taking a new effective clock from the template.
// Mutations already staged are kept.
func (u *Updater[K, N]) AddKey(key K) *Updater[K, N] {
	u.key = key
	u.clock = u.template.EffectiveClock()
	return u
}

func (u *Updater[K, N]) Key() K               { return u.key }
func (u *Updater[K, N]) Clock() int64         { return u.clock }
func (u *Updater[K, N]) Mutator() *Mutator[K] { return u.mutator }

// SetClock overrides the clock for the rest of the current row.
func (u *Updater[K, N]) SetClock(clock int64) *Updater[K, N] {
	u.clock = clock
	return u
}

// SetTTL sets the time to live, in seconds, of subsequently staged writes. Zero disables expiry.
func (u *Updater[K, N]) SetTTL(seconds int) *Updater[K, N] {
	u.ttl = seconds
	return u
}

// Set stages a write of value to the named column, encoded with the column's registered codec.
func (u *Updater[K, N]) Set(name N, value interface{}) *Updater[K, N] {
	codec, ok := u.template.ValueCodec(name)
	if !ok {
		u.mutator.fail(noCodecError(name))
		return u
	}
	return u.SetWith(name, value, codec)
}

// SetWith stages a write of value to the named column, encoded with codec.
func (u *Updater[K, N]) SetWith(name N, value interface{}, codec ValueCodec) *Updater[K, N] {
	n, err := encodeName(u.template.names, name)
	if err != nil {
		u.mutator.fail(WrapError("encoding column name", err))
		return u
	}
	v, err := codec.Marshal(value)
	if err != nil {
		u.mutator.fail(WrapError(fmt.Sprintf("encoding value of column %v", name), err))
		return u
	}
	u.mutator.AddInsertion(u.key, u.template.columnFamily, n, v, u.clock, u.ttl)
	return u
}

// Delete stages the deletion of the named column.
func (u *Updater[K, N]) Delete(name N) *Updater[K, N] {
	u.template.stageColumnDeletion(u.mutator, u.key, name, u.clock)
	return u
}
