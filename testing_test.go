package hector

import "errors"
import "flag"
import "strings"
import "testing"

var (
	flagCluster  = flag.String("cluster", "", "cassandra nodes given as comma-separated host:port pairs")
	flagKeyspace = flag.String("keyspace", "hector_test", "name of throwaway keyspace for testing")
)

// newTestSession returns a FakeSession, or, when -cluster is given, a session on a fresh keyspace
// holding the given column families. The keyspace is dropped when the test ends.
func newTestSession(t *testing.T, columnFamilies ...string) Session {
	if *flagCluster == "" {
		return NewFakeSession()
	}
	config := CassandraConfig{
		Node:        strings.Split(*flagCluster, ","),
		Keyspace:    "system",
		Consistency: "one",
	}
	if err := initKeyspace(config); err != nil {
		t.Fatal(err)
	}

	config.Keyspace = *flagKeyspace
	session, err := DialCassandra(config)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewSchema(columnFamilies...).Apply(session); err != nil {
		session.Close()
		t.Fatal(err)
	}
	t.Cleanup(func() {
		defer session.Close()
		var b CQLBuilder
		cql := b.Append("DROP KEYSPACE ").Append(*flagKeyspace).CQL()
		session.Query(cql.String()).Exec()
	})
	return session
}

func initKeyspace(config CassandraConfig) error {
	session, err := DialCassandra(config)
	if err != nil {
		return err
	}
	defer session.Close()

	var b CQLBuilder
	cql := b.Append("DROP KEYSPACE IF EXISTS ").Append(*flagKeyspace).CQL()
	if err := session.Query(cql.String()).Exec(); err != nil {
		return err
	}

	b.Clear()
	b.Append("CREATE KEYSPACE ").Append(*flagKeyspace)
	b.Append(" WITH REPLICATION = {'class': 'SimpleStrategy', 'replication_factor': 1}")
	return session.Query(b.CQL().String()).Exec()
}

// failingCodec is a Codec that cannot encode anything.
type failingCodec[T any] struct{}

func (failingCodec[T]) Encode(T) ([]byte, error) { return nil, errFailingCodec }
func (failingCodec[T]) Decode([]byte) (T, error) {
	var zero T
	return zero, errFailingCodec
}

var errFailingCodec = errors.New("failing codec")
