/*
Package hector provides typed row and column operations over a single Cassandra column family,
on top of the github.com/gocql/gocql package.

# Templates

A Template is bound to one column family and knows how to encode that family's row keys and
column names:

	session, err := hector.DialCassandra(hector.CassandraConfig{
		Keyspace: "app",
		Node:     []string{"localhost"},
	})
	users := hector.New(session, "users", hector.StringSerializer, hector.StringSerializer)

Column values are encoded by codecs registered per column. Registering a column also adds it to
the columns the template reads by default:

	users.AddColumn("email", hector.VarcharCodec).
		AddColumn("logins", hector.BigIntCodec)

	result, err := users.QueryColumns("logan")
	email, err := result.String("email")

When no columns are registered, QueryColumns returns the first columns of the row, up to the
limit given by SetCount (100 unless changed). A custom SlicePredicate may also be given:

	pred := hector.NewSlicePredicate[string]().SetRange("a", "m", false, 10)
	result, err := users.QueryColumnsWith("logan", pred)

# Mutators and Batching

Writes and deletes are staged on a Mutator and sent to the store as one batch. Staging never
fails; encoding errors are held by the mutator and reported when it executes.

The single-key operations execute immediately:

	err := users.DeleteColumn("logan", "email")
	err = users.DeleteRow("logan")

The variants taking a Mutator execute it at the end of the operation, unless the template is
batched, in which case the caller decides when to flush:

	users.SetBatched(true)
	m := users.NewMutator()
	users.DeleteColumnWith(m, "logan", "email")
	users.DeleteColumnWith(m, "logan", "logins")
	result, err := users.ExecuteBatch(m)

ExecuteBatch discards the mutator's pending mutations only once the store has accepted them.

Writes go through an Updater, which stamps every mutation for a row with the same clock:

	u := users.NewUpdater("logan").Set("email", "logan@example.com").Set("logins", int64(1))
	err := users.Update(u)

# Clocks

Deletions and updaters use the template's effective clock: the clock given to SetClock if there
is one, or else a fresh clock from the session. A CassandraSession hands out microsecond
timestamps by default; a SnowflakeClock can be configured instead.

# Errors

Errors from the store are returned unchanged, unless an ExceptionsTranslator is installed with
SetExceptionsTranslator. GocqlTranslator maps gocql errors onto the error types of
github.com/juju/errors.

# Testing

NewFakeSession returns an in-memory Session that records every batch it executes, for unit
testing code that uses templates.
*/
package hector
