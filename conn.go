package hector

import "strings"
import "time"

import "github.com/gocql/gocql"

// CassandraConfig specifies a Cassandra cluster and keyspace to connect to.
type CassandraConfig struct {
	Keyspace string   // Required. The keyspace to use throughout the connection.
	Node     []string // Required. The list of nodes in the cluster, given as <host>:<port> strings.

	// Optional. The default consistency level for the connection. Valid values are one of:
	//
	//	one, two, three, any, all, quorum, localquorum, eachquorum.
	//
	// If no value or an invalid value is given, then "quorum" will be used. Matching is case
	// insensitive.
	Consistency string

	// Optional. The consistency of the paxos phase of conditional writes, serial or localserial.
	// gocql's default is used if no value or an invalid value is given.
	SerialConsistency string

	Timeout      time.Duration   // Optional. Per request timeout; gocql's default if zero.
	ProtoVersion int             // Optional. Native protocol version; negotiated if zero.
	Clock        ClockSource     // Optional. Source of write clocks; a MicrosecondClock if nil.
	Logger       gocql.StdLogger // Optional. Receives failed batches; gocql.Logger if nil.
}

// CassandraSession is a Session over an open gocql connection. Column families are stored in the
// wide-row layout produced by CreateStatement.
type CassandraSession struct {
	*gocql.Session                 // The underlying gocql Session, for querying the cluster.
	Config         CassandraConfig // The settings used to establish the session.
	clock          ClockSource
	logger         gocql.StdLogger
}

// DialCassandra connects to a Cassandra cluster as specified by the given config.
func DialCassandra(config CassandraConfig) (*CassandraSession, error) {
	var session *gocql.Session
	var err error
	if session, err = makeCluster(config).CreateSession(); err != nil {
		return nil, err
	}
	return newCassandraSession(config, session), nil
}

func newCassandraSession(config CassandraConfig, session *gocql.Session) *CassandraSession {
	s := &CassandraSession{Session: session, Config: config, clock: config.Clock, logger: config.Logger}
	if s.clock == nil {
		s.clock = &MicrosecondClock{}
	}
	if s.logger == nil {
		s.logger = gocql.Logger
	}
	return s
}

func makeCluster(config CassandraConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(config.Node...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = parseConsistency(config.Consistency)
	if serial, ok := parseSerialConsistency(config.SerialConsistency); ok {
		cluster.SerialConsistency = serial
	}
	if config.Timeout > 0 {
		cluster.Timeout = config.Timeout
	}
	if config.ProtoVersion > 0 {
		cluster.ProtoVersion = config.ProtoVersion
	}
	return cluster
}

func parseConsistency(value string) (consistency gocql.Consistency) {
	switch strings.ToLower(value) {
	default:
		consistency = gocql.Quorum
	case "quorum":
		consistency = gocql.Quorum
	case "any":
		consistency = gocql.Any
	case "one":
		consistency = gocql.One
	case "two":
		consistency = gocql.Two
	case "three":
		consistency = gocql.Three
	case "all":
		consistency = gocql.All
	case "localquorum":
		consistency = gocql.LocalQuorum
	case "eachquorum":
		consistency = gocql.EachQuorum
	}
	return
}

func parseSerialConsistency(value string) (gocql.SerialConsistency, bool) {
	switch strings.ToLower(value) {
	case "serial":
		return gocql.Serial, true
	case "localserial":
		return gocql.LocalSerial, true
	}
	return 0, false
}

func (s *CassandraSession) CreateClock() int64 {
	return s.clock.CreateClock()
}

// Execute sends the mutations as one logged batch.
func (s *CassandraSession) Execute(mutations []Mutation) (MutationResult, error) {
	batch := s.Session.NewBatch(gocql.LoggedBatch)
	for _, m := range mutations {
		stmt := MutationStatement(m)
		batch.Query(stmt.String(), stmt.params...)
	}
	start := time.Now()
	if err := s.Session.ExecuteBatch(batch); err != nil {
		s.logger.Printf("hector: batch of %d mutations failed after %d attempts: %v",
			len(mutations), batch.Attempts(), err)
		return MutationResult{}, err
	}
	return MutationResult{
		Count:         len(mutations),
		Attempts:      batch.Attempts(),
		ExecutionTime: time.Since(start),
	}, nil
}

func (s *CassandraSession) Slice(columnFamily string, key []byte, slice Slice) ([]Column, error) {
	stmt := SliceStatement(columnFamily, key, slice)
	iter := s.Session.Query(stmt.String(), stmt.params...).Iter()
	var columns []Column
	var name, value []byte
	var clock int64
	for iter.Scan(&name, &value, &clock) {
		columns = append(columns, Column{Name: name, Value: value, Clock: clock})
		name, value = nil, nil
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return columns, nil
}

// CreateColumnFamily creates the table backing a column family.
func (s *CassandraSession) CreateColumnFamily(columnFamily string) error {
	stmt := CreateStatement(columnFamily)
	return s.Session.Query(stmt.String(), stmt.params...).Exec()
}
