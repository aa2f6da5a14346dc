package hector

import "sort"
import "strings"

import "github.com/juju/errors"

// A ColumnFamilyCreator creates the table backing a column family. Both CassandraSession and
// FakeSession are ColumnFamilyCreators.
type ColumnFamilyCreator interface {
	CreateColumnFamily(columnFamily string) error
}

// Schema is the set of column families a keyspace is expected to hold.
type Schema struct {
	families map[string]bool
}

// NewSchema returns a schema of the given column families.
func NewSchema(columnFamilies ...string) *Schema {
	s := &Schema{families: make(map[string]bool)}
	for _, cf := range columnFamilies {
		s.AddColumnFamily(cf)
	}
	return s
}

// AddColumnFamily adds a column family to the schema. Names are case insensitive, as in CQL.
func (s *Schema) AddColumnFamily(name string) *Schema {
	s.families[strings.ToLower(name)] = true
	return s
}

// ColumnFamilies returns the names of the schema's column families, sorted.
func (s *Schema) ColumnFamilies() []string {
	names := make([]string, 0, len(s.families))
	for name := range s.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply creates each of the schema's column families. Column families that already exist are left
// as they are.
func (s *Schema) Apply(creator ColumnFamilyCreator) error {
	for _, cf := range s.ColumnFamilies() {
		err := GocqlTranslator{}.Translate(creator.CreateColumnFamily(cf))
		if err != nil && !errors.IsAlreadyExists(err) {
			return errors.Annotatef(err, "creating column family %s", cf)
		}
	}
	return nil
}
