// Command example runs single row operations against a column family of strings.
//
//	example --config hector.ini set logan email=logan@example.com
//	example --config hector.ini get logan
//	example --config hector.ini delete-column logan email nickname
//	example --fake delete-row logan
package main

import "errors"
import "fmt"
import "io"
import "log"
import "os"
import "strings"

import "github.com/alecthomas/kong"
import "github.com/foben/hector"

type cli struct {
	Config       string   `short:"c" type:"path" help:"INI file with a [cassandra] section."`
	Keyspace     string   `short:"k" help:"Keyspace, overriding the config file."`
	Node         []string `short:"n" help:"Cluster node as host:port, overriding the config file."`
	ColumnFamily string   `name:"cf" default:"users" help:"Column family to operate on."`
	Fake         bool     `help:"Use an in-memory session instead of a cluster."`

	DeleteRow    cmdDeleteRow    `cmd:"" help:"Delete every column of a row."`
	DeleteColumn cmdDeleteColumn `cmd:"" help:"Delete columns of a row in one batch."`
	Get          cmdGet          `cmd:"" help:"Print the columns of a row."`
	Set          cmdSet          `cmd:"" help:"Write columns to a row."`
}

type app struct {
	users *hector.Template[string, string]
	out   io.Writer
}

type cmdDeleteRow struct {
	Key string `arg:"" help:"Row key."`
}

func (c *cmdDeleteRow) Run(a *app) error {
	return a.users.DeleteRow(c.Key)
}

type cmdDeleteColumn struct {
	Key   string   `arg:"" help:"Row key."`
	Names []string `arg:"" help:"Column names."`
}

func (c *cmdDeleteColumn) Run(a *app) error {
	if len(c.Names) == 1 {
		return a.users.DeleteColumn(c.Key, c.Names[0])
	}
	users := a.users.Clone().SetBatched(true)
	m := users.NewMutator()
	for _, name := range c.Names {
		if err := users.DeleteColumnWith(m, c.Key, name); err != nil {
			return err
		}
	}
	result, err := users.ExecuteBatch(m)
	if err != nil {
		return err
	}
	log.Printf("deleted %d columns in %v", result.Count, result.ExecutionTime)
	return nil
}

type cmdGet struct {
	Key      string   `arg:"" help:"Row key."`
	Names    []string `arg:"" optional:"" help:"Column names; the first --count columns if none are given."`
	Count    int      `default:"100" help:"Number of columns to read when no names are given."`
	Start    string   `help:"First column of the range."`
	Reversed bool     `help:"Read the range in reverse order."`
}

func (c *cmdGet) Run(a *app) error {
	pred := hector.NewSlicePredicate[string]().
		SetColumnNames(c.Names...).
		SetCount(c.Count).
		SetReversed(c.Reversed)
	if c.Start != "" {
		pred.SetStart(c.Start)
	}
	result, err := a.users.QueryColumnsWith(c.Key, pred)
	if err != nil {
		return err
	}
	for _, name := range result.ColumnNames() {
		col, _ := result.Column(name)
		fmt.Fprintf(a.out, "%s\t%s\t%d\n", name, col.Value, col.Clock)
	}
	return nil
}

type cmdSet struct {
	Key     string   `arg:"" help:"Row key."`
	Columns []string `arg:"" help:"Columns as name=value."`
	TTL     int      `help:"Seconds until the columns expire."`
}

var errBadColumn = errors.New("columns must be given as name=value")

func (c *cmdSet) Run(a *app) error {
	u := a.users.NewUpdater(c.Key).SetTTL(c.TTL)
	for _, column := range c.Columns {
		i := strings.Index(column, "=")
		if i < 1 {
			return fmt.Errorf("%w: %q", errBadColumn, column)
		}
		u.SetWith(column[:i], column[i+1:], hector.VarcharCodec)
	}
	return a.users.Update(u)
}

func (c *cli) cassandraConfig() (hector.CassandraConfig, error) {
	var config hector.CassandraConfig
	if c.Config != "" {
		var err error
		if config, err = loadConfig(c.Config); err != nil {
			return config, err
		}
	}
	if c.Keyspace != "" {
		config.Keyspace = c.Keyspace
	}
	if len(c.Node) > 0 {
		config.Node = c.Node
	}
	if config.Keyspace == "" || len(config.Node) == 0 {
		return config, errors.New("a keyspace and at least one node are required")
	}
	return config, nil
}

func (c *cli) connect() (hector.Session, func(), error) {
	if c.Fake {
		log.Printf("using an in-memory session; nothing is kept after exit")
		return hector.NewFakeSession(), func() {}, nil
	}
	config, err := c.cassandraConfig()
	if err != nil {
		return nil, nil, err
	}
	log.Printf("connecting to %s, keyspace %s", strings.Join(config.Node, ","), config.Keyspace)
	session, err := hector.DialCassandra(config)
	if err != nil {
		return nil, nil, err
	}
	if err := hector.NewSchema(c.ColumnFamily).Apply(session); err != nil {
		session.Close()
		return nil, nil, err
	}
	return session, session.Close, nil
}

func run(args []string, out io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("example"),
		kong.Description("Row and column operations on a Cassandra column family."),
		kong.UsageOnError())
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	session, closeSession, err := c.connect()
	if err != nil {
		return err
	}
	defer closeSession()

	users := hector.New[string, string](session, c.ColumnFamily, hector.StringSerializer, hector.StringSerializer).
		SetExceptionsTranslator(hector.GocqlTranslator{})
	return ctx.Run(&app{users: users, out: out})
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
