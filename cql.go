package hector

import "fmt"
import "strings"

func placeholderList(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// PreparedCQL is a string containing a CQL statement that may contain placeholders ('?').
type PreparedCQL string

// Bind returns a CQL value, associating a prepared CQL statement with values for its placeholders.
func (pcql PreparedCQL) Bind(params ...interface{}) CQL {
	return CQL{PreparedCQL: pcql, params: params}
}

// CQL is a PreparedCQL value associated with values for its placeholders.
type CQL struct {
	PreparedCQL
	params []interface{}
}

// String returns the prepared CQL string.
func (cql CQL) String() string {
	return string(cql.PreparedCQL)
}

// Params returns the values bound to the statement's placeholders.
func (cql CQL) Params() []interface{} {
	return cql.params
}

// CQLBuilder is a sequence of CQL values, which may be fragments of proper CQL bound with values
// for placeholders. This is for convenience of constructing CQL programmatically in a declarative
// fashion.
type CQLBuilder []CQL

func (b CQLBuilder) join(prefix, conn string) (result CQL) {
	if len(b) == 0 {
		return
	}
	terms := make([]string, len(b))
	np := 0
	for i, p := range b {
		terms[i] = string(p.PreparedCQL)
		np += len(p.params)
	}
	result.PreparedCQL = PreparedCQL(prefix + strings.Join(terms, conn))
	result.params = make([]interface{}, 0, np)
	for _, p := range b {
		result.params = append(result.params, p.params...)
	}
	return
}

// CQL combines all of the fragments of the builder into a single CQL value.
func (b CQLBuilder) CQL() CQL {
	return b.join("", "")
}

// Clear reinitializes the builder to an empty state.
func (b *CQLBuilder) Clear() *CQLBuilder {
	*b = make(CQLBuilder, 0)
	return b
}

// Append adds a CQL fragment to the end. Values for placeholders in the fragment may be given as
// additional arguments.
func (b *CQLBuilder) Append(term string, params ...interface{}) *CQLBuilder {
	*b = append(*b, CQL{PreparedCQL: PreparedCQL(term), params: params})
	return b
}

// AppendCQL adds a CQL value as a fragment to the end of the builder. If the given CQL has bound
// values for placeholders, they are included.
func (b *CQLBuilder) AppendCQL(cql CQL) *CQLBuilder {
	return b.Append(string(cql.PreparedCQL), cql.params...)
}

// A column family is stored in CQL as a wide-row table with these three columns: one partition
// per row key, one clustering row per column, names and values as blobs.
const (
	keyColumn   = "key"
	nameColumn  = "column1"
	valueColumn = "value"
)

// CreateStatement returns the CQL statement that creates the table backing a column family.
func CreateStatement(columnFamily string) CQL {
	var b CQLBuilder
	b.Append("CREATE TABLE " + columnFamily + " (")
	b.Append(keyColumn + " blob, ")
	b.Append(nameColumn + " blob, ")
	b.Append(valueColumn + " blob, ")
	b.Append("PRIMARY KEY (" + keyColumn + ", " + nameColumn + "))")
	return b.CQL()
}

// MutationStatement returns the CQL statement that applies a single mutation.
func MutationStatement(m Mutation) CQL {
	var b CQLBuilder
	switch m.Kind {
	case Deletion:
		b.Append("DELETE FROM " + m.ColumnFamily)
		b.Append(" USING TIMESTAMP ?", m.Clock)
		b.Append(" WHERE "+keyColumn+" = ?", m.Key)
		if !m.RowDeletion() {
			b.Append(" AND "+nameColumn+" = ?", m.Name)
		}
	default:
		b.Append("INSERT INTO " + m.ColumnFamily)
		b.Append(" (" + strings.Join([]string{keyColumn, nameColumn, valueColumn}, ", ") + ")")
		b.Append(" VALUES ("+placeholderList(3)+")", m.Key, m.Name, m.Value)
		b.Append(" USING TIMESTAMP ?", m.Clock)
		if m.TTL > 0 {
			b.Append(" AND TTL ?", m.TTL)
		}
	}
	return b.CQL()
}

// SliceStatement returns the CQL statement that reads the columns of a row selected by slice.
// Each returned row holds a column name, value and write time.
func SliceStatement(columnFamily string, key []byte, slice Slice) CQL {
	var b CQLBuilder
	b.Append("SELECT " + nameColumn + ", " + valueColumn + ", WRITETIME(" + valueColumn + ")")
	b.Append(" FROM " + columnFamily)

	var where CQLBuilder
	where.Append(keyColumn+" = ?", key)
	if len(slice.Names) > 0 {
		names := make([]interface{}, len(slice.Names))
		for i, name := range slice.Names {
			names[i] = name
		}
		where.Append(nameColumn+" IN ("+placeholderList(len(names))+")", names...)
		b.AppendCQL(where.join(" WHERE ", " AND "))
		return b.CQL()
	}

	// A reversed slice starts at the greater bound.
	lower, upper := slice.Start, slice.Finish
	if slice.Reversed {
		lower, upper = upper, lower
	}
	if lower != nil {
		where.Append(nameColumn+" >= ?", lower)
	}
	if upper != nil {
		where.Append(nameColumn+" <= ?", upper)
	}
	b.AppendCQL(where.join(" WHERE ", " AND "))
	if slice.Reversed {
		b.Append(" ORDER BY " + nameColumn + " DESC")
	}
	b.Append(fmt.Sprintf(" LIMIT %d", slice.Count))
	return b.CQL()
}
