package main

import "fmt"
import "strings"
import "time"

import "github.com/foben/hector"
import "github.com/robfig/config"

const cassandraSection = "cassandra"

// loadConfig reads cluster settings from the [cassandra] section of an INI file:
//
//	[cassandra]
//	keyspace = app
//	nodes = 10.0.0.1:9042, 10.0.0.2:9042
//	consistency = localquorum
//	serial_consistency = localserial
//	timeout = 2s
//	proto_version = 4
//
// Every option may be left out.
func loadConfig(path string) (hector.CassandraConfig, error) {
	var cc hector.CassandraConfig
	conf, err := config.ReadDefault(path)
	if err != nil {
		return cc, err
	}
	if !conf.HasSection(cassandraSection) {
		return cc, fmt.Errorf("%s: no [%s] section", path, cassandraSection)
	}

	cc.Keyspace = stringOption(conf, "keyspace")
	for _, node := range strings.Split(stringOption(conf, "nodes"), ",") {
		if node = strings.TrimSpace(node); node != "" {
			cc.Node = append(cc.Node, node)
		}
	}
	cc.Consistency = stringOption(conf, "consistency")
	cc.SerialConsistency = stringOption(conf, "serial_consistency")
	if timeout := stringOption(conf, "timeout"); timeout != "" {
		if cc.Timeout, err = time.ParseDuration(timeout); err != nil {
			return cc, hector.WrapError(path+": timeout", err)
		}
	}
	if conf.HasOption(cassandraSection, "proto_version") {
		if cc.ProtoVersion, err = conf.Int(cassandraSection, "proto_version"); err != nil {
			return cc, hector.WrapError(path+": proto_version", err)
		}
	}
	return cc, nil
}

func stringOption(conf *config.Config, option string) string {
	s, err := conf.String(cassandraSection, option)
	if err != nil {
		return ""
	}
	return stripQuotes(strings.TrimSpace(s))
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
