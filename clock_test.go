package hector

import "sync"
import "testing"
import "time"

import . "github.com/smartystreets/goconvey/convey"

func TestMicrosecondClock(t *testing.T) {
	Convey("Microsecond clocks track the wall clock", t, func() {
		var clock MicrosecondClock
		before := time.Now().UnixNano() / int64(time.Microsecond)
		c := clock.CreateClock()
		after := time.Now().UnixNano() / int64(time.Microsecond)
		So(c, ShouldBeBetweenOrEqual, before, after+1)
	})

	Convey("Microsecond clocks strictly increase", t, func() {
		var clock MicrosecondClock
		last := clock.CreateClock()
		for i := 0; i < 1000; i++ {
			c := clock.CreateClock()
			So(c, ShouldBeGreaterThan, last)
			last = c
		}
	})

	Convey("Concurrent callers never share a clock", t, func() {
		var clock MicrosecondClock
		var mu sync.Mutex
		var wg sync.WaitGroup
		seen := make(map[int64]bool)
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 500; i++ {
					c := clock.CreateClock()
					mu.Lock()
					seen[c] = true
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		So(len(seen), ShouldEqual, 8*500)
	})
}

func TestSnowflakeClock(t *testing.T) {
	clock, err := NewSnowflakeClock()
	if err != nil {
		t.Skipf("no snowflake worker id available: %v", err)
	}

	Convey("Snowflake clocks increase", t, func() {
		last := clock.CreateClock()
		So(last, ShouldBeGreaterThan, int64(0))
		for i := 0; i < 100; i++ {
			c := clock.CreateClock()
			So(c, ShouldBeGreaterThan, last)
			last = c
		}
	})
}
