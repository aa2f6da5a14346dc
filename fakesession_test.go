package hector

import "errors"
import "testing"

import . "github.com/smartystreets/goconvey/convey"

func columnNames(columns []Column) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = string(col.Name)
	}
	return names
}

func insertion(key, name, value string, clock int64) Mutation {
	return Mutation{
		Kind:         Insertion,
		Key:          []byte(key),
		ColumnFamily: "cf",
		Name:         []byte(name),
		Value:        []byte(value),
		Clock:        clock,
	}
}

func columnDeletion(key, name string, clock int64) Mutation {
	return Mutation{Kind: Deletion, Key: []byte(key), ColumnFamily: "cf", Name: []byte(name), Clock: clock}
}

func rowDeletion(key string, clock int64) Mutation {
	return Mutation{Kind: Deletion, Key: []byte(key), ColumnFamily: "cf", Clock: clock}
}

func TestFakeSession(t *testing.T) {
	Convey("Given a fake session holding one row", t, func() {
		s := NewFakeSession()
		_, err := s.Execute([]Mutation{
			insertion("r", "c", "3", 10),
			insertion("r", "a", "1", 10),
			insertion("r", "e", "5", 10),
			insertion("r", "b", "2", 10),
			insertion("r", "d", "4", 10),
		})
		So(err, ShouldBeNil)

		Convey("columns are kept in name order", func() {
			So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"a", "b", "c", "d", "e"})
			So(s.Row("cf", []byte("r"))[0].Clock, ShouldEqual, int64(10))
		})

		Convey("name based slices return only the named columns", func() {
			columns, err := s.Slice("cf", []byte("r"), Slice{Names: [][]byte{[]byte("d"), []byte("a"), []byte("z")}})
			So(err, ShouldBeNil)
			So(columnNames(columns), ShouldResemble, []string{"a", "d"})
		})

		Convey("range slices honor bounds and count", func() {
			columns, err := s.Slice("cf", []byte("r"), Slice{Start: []byte("b"), Finish: []byte("d"), Count: 10})
			So(err, ShouldBeNil)
			So(columnNames(columns), ShouldResemble, []string{"b", "c", "d"})

			columns, err = s.Slice("cf", []byte("r"), Slice{Start: []byte("b"), Count: 2})
			So(err, ShouldBeNil)
			So(columnNames(columns), ShouldResemble, []string{"b", "c"})
		})

		Convey("reversed slices walk down from the start", func() {
			columns, err := s.Slice("cf", []byte("r"), Slice{Start: []byte("d"), Finish: []byte("b"), Reversed: true, Count: 10})
			So(err, ShouldBeNil)
			So(columnNames(columns), ShouldResemble, []string{"d", "c", "b"})

			columns, err = s.Slice("cf", []byte("r"), Slice{Reversed: true, Count: 2})
			So(err, ShouldBeNil)
			So(columnNames(columns), ShouldResemble, []string{"e", "d"})
		})

		Convey("range slices need a positive count", func() {
			_, err := s.Slice("cf", []byte("r"), Slice{Count: 0})
			So(err, ShouldNotBeNil)
		})

		Convey("a column deletion removes older writes and shadows late ones", func() {
			_, err := s.Execute([]Mutation{columnDeletion("r", "c", 20)})
			So(err, ShouldBeNil)
			So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"a", "b", "d", "e"})

			s.Execute([]Mutation{insertion("r", "c", "late", 15)})
			So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"a", "b", "d", "e"})

			s.Execute([]Mutation{insertion("r", "c", "new", 21)})
			So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"a", "b", "c", "d", "e"})
		})

		Convey("a deletion older than a write leaves it alone", func() {
			s.Execute([]Mutation{columnDeletion("r", "a", 5), rowDeletion("r", 9)})
			So(len(s.Row("cf", []byte("r"))), ShouldEqual, 5)
		})

		Convey("a row deletion removes every column", func() {
			s.Execute([]Mutation{insertion("r", "f", "6", 30), rowDeletion("r", 20)})
			So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"f"})
		})

		Convey("older writes never replace newer ones", func() {
			s.Execute([]Mutation{insertion("r", "a", "stale", 9)})
			So(string(s.Row("cf", []byte("r"))[0].Value), ShouldEqual, "1")
		})

		Convey("returned columns are copies", func() {
			s.Row("cf", []byte("r"))[0].Value[0] = 'x'
			So(string(s.Row("cf", []byte("r"))[0].Value), ShouldEqual, "1")
		})
	})

	Convey("Clocks of zero and below are ordinary clocks", t, func() {
		s := NewFakeSession()
		s.Execute([]Mutation{insertion("r", "a", "1", 0), insertion("r", "b", "2", -5)})
		So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"a", "b"})

		Convey("and deletions at them still shadow", func() {
			s.Execute([]Mutation{rowDeletion("r", 0)})
			So(columnNames(s.Row("cf", []byte("r"))), ShouldBeEmpty)
			s.Execute([]Mutation{insertion("r", "a", "late", 0), insertion("r", "c", "3", 1)})
			So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"c"})

			s.Execute([]Mutation{columnDeletion("r", "d", -1), insertion("r", "d", "4", -1), insertion("r", "e", "5", -1)})
			So(columnNames(s.Row("cf", []byte("r"))), ShouldResemble, []string{"c"})
		})
	})

	Convey("Missing rows read as empty", t, func() {
		s := NewFakeSession()
		columns, err := s.Slice("cf", []byte("r"), Slice{Count: 1})
		So(err, ShouldBeNil)
		So(columns, ShouldBeEmpty)
	})

	Convey("Every batch is recorded", t, func() {
		s := NewFakeSession()
		boom := errors.New("boom")
		s.FailNext(boom)

		_, err := s.Execute([]Mutation{insertion("r", "a", "1", 1)})
		So(err, ShouldEqual, boom)
		So(s.Row("cf", []byte("r")), ShouldBeEmpty)

		result, err := s.Execute([]Mutation{insertion("r", "a", "1", 1)})
		So(err, ShouldBeNil)
		So(result.Count, ShouldEqual, 1)
		So(result.Attempts, ShouldEqual, 1)

		So(s.FlushCount(), ShouldEqual, 2)
		So(s.Flushes()[1][0].Name, ShouldResemble, []byte("a"))
	})

	Convey("Malformed batches are rejected as a whole", t, func() {
		s := NewFakeSession()
		_, err := s.Execute([]Mutation{insertion("r", "a", "1", 1), {Kind: Deletion, Key: []byte("r")}})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "mutation 1")
		So(s.Row("cf", []byte("r")), ShouldBeEmpty)
	})

	Convey("Clocks count up", t, func() {
		s := NewFakeSession()
		So(s.CreateClock(), ShouldEqual, int64(1))
		So(s.CreateClock(), ShouldEqual, int64(2))
		So(s.ClockCalls(), ShouldEqual, 2)
	})
}
