package hector

import "testing"

import . "github.com/smartystreets/goconvey/convey"

func TestSlicePredicate(t *testing.T) {
	Convey("A new predicate is an open range of DefaultCount columns", t, func() {
		p := NewSlicePredicate[string]()
		So(p.Count(), ShouldEqual, DefaultCount)
		So(p.NameBased(), ShouldBeFalse)
		So(p.Reversed(), ShouldBeFalse)
		_, ok := p.Start()
		So(ok, ShouldBeFalse)
		_, ok = p.Finish()
		So(ok, ShouldBeFalse)
	})

	Convey("Adding a column name", t, func() {
		p := NewSlicePredicate[string]().AddColumnName("a").AddColumnName("b").AddColumnName("a")

		Convey("keeps each name once, in insertion order", func() {
			So(p.ColumnNames(), ShouldResemble, []string{"a", "b"})
			So(p.NameBased(), ShouldBeTrue)
		})

		Convey("makes the predicate ignore the count", func() {
			p.SetCount(1)
			slice, err := p.encode(StringSerializer)
			So(err, ShouldBeNil)
			So(slice.Names, ShouldResemble, [][]byte{[]byte("a"), []byte("b")})
			So(slice.Count, ShouldEqual, 0)
			So(slice.Start, ShouldBeNil)
		})

		Convey("can be undone", func() {
			p.ClearColumnNames()
			So(p.NameBased(), ShouldBeFalse)
			p.AddColumnName("a")
			So(p.ColumnNames(), ShouldResemble, []string{"a"})
		})

		Convey("can be replaced", func() {
			p.SetColumnNames("c", "c", "d")
			So(p.ColumnNames(), ShouldResemble, []string{"c", "d"})
		})
	})

	Convey("Ranges encode their bounds", t, func() {
		p := NewSlicePredicate[int64]().SetRange(10, 2, true, 5)
		slice, err := p.encode(Int64Serializer)
		So(err, ShouldBeNil)
		So(slice.Names, ShouldBeNil)
		So(slice.Start, ShouldResemble, []byte{0, 0, 0, 0, 0, 0, 0, 10})
		So(slice.Finish, ShouldResemble, []byte{0, 0, 0, 0, 0, 0, 0, 2})
		So(slice.Reversed, ShouldBeTrue)
		So(slice.Count, ShouldEqual, 5)

		p.OpenRange()
		slice, err = p.encode(Int64Serializer)
		So(err, ShouldBeNil)
		So(slice.Start, ShouldBeNil)
		So(slice.Finish, ShouldBeNil)
	})

	Convey("An empty name encodes as an empty bound, not an open one", t, func() {
		slice, err := NewSlicePredicate[string]().SetStart("").encode(StringSerializer)
		So(err, ShouldBeNil)
		So(slice.Start, ShouldNotBeNil)
		So(len(slice.Start), ShouldEqual, 0)
	})

	Convey("Counts are passed through unchecked", t, func() {
		slice, err := NewSlicePredicate[string]().SetCount(-1).encode(StringSerializer)
		So(err, ShouldBeNil)
		So(slice.Count, ShouldEqual, -1)
	})

	Convey("Encoding errors are returned", t, func() {
		_, err := NewSlicePredicate[string]().AddColumnName("a").encode(failingCodec[string]{})
		So(err, ShouldEqual, errFailingCodec)
		_, err = NewSlicePredicate[string]().SetFinish("z").encode(failingCodec[string]{})
		So(err, ShouldEqual, errFailingCodec)
	})

	Convey("Clones are independent", t, func() {
		p := NewSlicePredicate[string]().AddColumnName("a").SetStart("s")
		c := p.Clone()
		c.AddColumnName("b").SetStart("t").SetCount(3)

		So(p.ColumnNames(), ShouldResemble, []string{"a"})
		start, _ := p.Start()
		So(start, ShouldEqual, "s")
		So(p.Count(), ShouldEqual, DefaultCount)
		So(c.ColumnNames(), ShouldResemble, []string{"a", "b"})
	})
}
