package hector

import "time"

import "github.com/gocql/gocql"

// ColumnFamilyResult holds the columns returned by a read of one row, with column names decoded
// and values left encoded until asked for.
type ColumnFamilyResult[K any, N comparable] struct {
	key     K
	names   []N
	columns map[N]Column
	codecs  map[N]ValueCodec
}

// newColumnFamilyResult decodes the names of columns read for key. The result keeps its own copy
// of the template's codecs, so later AddColumn calls do not change how it decodes values.
func newColumnFamilyResult[K any, N comparable](t *Template[K, N], key K, columns []Column) (*ColumnFamilyResult[K, N], error) {
	r := &ColumnFamilyResult[K, N]{
		key:     key,
		names:   make([]N, 0, len(columns)),
		columns: make(map[N]Column, len(columns)),
		codecs:  make(map[N]ValueCodec, len(t.codecs)),
	}
	for name, codec := range t.codecs {
		r.codecs[name] = codec
	}
	for _, col := range columns {
		name, err := t.names.Decode(col.Name)
		if err != nil {
			return nil, WrapError("decoding column name", err)
		}
		if _, dup := r.columns[name]; !dup {
			r.names = append(r.names, name)
		}
		r.columns[name] = col
	}
	return r, nil
}

func (r *ColumnFamilyResult[K, N]) Key() K { return r.key }

// HasResults reports whether any columns were returned.
func (r *ColumnFamilyResult[K, N]) HasResults() bool {
	return len(r.names) > 0
}

// ColumnNames returns the returned column names in the order the store gave them.
func (r *ColumnFamilyResult[K, N]) ColumnNames() []N {
	names := make([]N, len(r.names))
	copy(names, r.names)
	return names
}

func (r *ColumnFamilyResult[K, N]) Column(name N) (Column, bool) {
	col, ok := r.columns[name]
	return col, ok
}

// Clock returns the timestamp the column was written with.
func (r *ColumnFamilyResult[K, N]) Clock(name N) (int64, bool) {
	col, ok := r.columns[name]
	return col.Clock, ok
}

// Value decodes a column's value into dest using the codec registered for the column. It returns
// false if the column was not returned.
func (r *ColumnFamilyResult[K, N]) Value(name N, dest interface{}) (bool, error) {
	col, ok := r.columns[name]
	if !ok {
		return false, nil
	}
	codec, ok := r.codecs[name]
	if !ok {
		return true, noCodecError(name)
	}
	return true, codec.Unmarshal(col.Value, dest)
}

func resultValue[T any, K any, N comparable](r *ColumnFamilyResult[K, N], name N) (T, error) {
	var v T
	ok, err := r.Value(name, &v)
	if err == nil && !ok {
		err = ErrNotFound
	}
	return v, err
}

// String decodes a column's value as a string. ErrNotFound is returned if the column was not
// returned.
func (r *ColumnFamilyResult[K, N]) String(name N) (string, error) {
	return resultValue[string](r, name)
}

func (r *ColumnFamilyResult[K, N]) Bytes(name N) ([]byte, error) {
	return resultValue[[]byte](r, name)
}

func (r *ColumnFamilyResult[K, N]) Int64(name N) (int64, error) {
	return resultValue[int64](r, name)
}

func (r *ColumnFamilyResult[K, N]) Bool(name N) (bool, error) {
	return resultValue[bool](r, name)
}

func (r *ColumnFamilyResult[K, N]) Float64(name N) (float64, error) {
	return resultValue[float64](r, name)
}

func (r *ColumnFamilyResult[K, N]) Time(name N) (time.Time, error) {
	return resultValue[time.Time](r, name)
}

func (r *ColumnFamilyResult[K, N]) UUID(name N) (gocql.UUID, error) {
	return resultValue[gocql.UUID](r, name)
}
