package hector

import "sync"
import "sync/atomic"
import "time"

import "github.com/sdming/gosnow"

// A ClockSource hands out timestamps for writes and deletes. The store orders mutations of the same
// column by these values, so one keyspace should stick to a single kind of source.
type ClockSource interface {
	CreateClock() int64
}

// MicrosecondClock generates wall clock timestamps in microseconds since the Unix epoch, which is
// what Cassandra itself assigns. Values from one MicrosecondClock are strictly increasing, even
// when called more than once within the same microsecond. The zero value is ready to use.
type MicrosecondClock struct {
	last atomic.Int64
}

func (c *MicrosecondClock) CreateClock() int64 {
	for {
		now := time.Now().UnixNano() / int64(time.Microsecond)
		last := c.last.Load()
		if now <= last {
			now = last + 1
		}
		if c.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

// Epoch is the start of time for snowflake clocks.
var Epoch = time.Date(2014, 1, 0, 0, 0, 0, 0, time.UTC)

func init() {
	gosnow.Since = Epoch.UnixNano() / int64(time.Millisecond)
}

// SnowflakeClock generates logical timestamps from a snowflake ID generator. Values are unique
// across processes with distinct worker IDs and increase with time, but they are not comparable
// with microsecond timestamps.
type SnowflakeClock struct {
	mu        sync.Mutex
	snowflake *gosnow.SnowFlake
}

func NewSnowflakeClock() (*SnowflakeClock, error) {
	snowflake, err := gosnow.Default()
	if err != nil {
		return nil, err
	}
	return &SnowflakeClock{snowflake: snowflake}, nil
}

// CreateClock waits out a backwards step of the system clock rather than fail.
func (c *SnowflakeClock) CreateClock() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		uid, err := c.snowflake.Next()
		if err == nil {
			return int64(uid)
		}
		time.Sleep(time.Millisecond)
	}
}
