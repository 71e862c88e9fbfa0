package vndb

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewReleased(t *testing.T) {
	Convey("NewReleased", t, func() {
		Convey("Accepts valid YYYY-MM-DD dates for every operator", func() {
			for _, op := range []CompareOp{OpEq, OpNeq, OpLt, OpGt, OpGeq, OpLeq} {
				r, err := NewReleased(op, "2020-01-01")
				So(err, ShouldBeNil)
				So(r, ShouldNotBeNil)
			}
		})

		Convey("Rejects malformed dates", func() {
			for _, date := range []string{"", "20200101", "2020-13-01", "2020-02-30", "january", "2020-1-1"} {
				_, err := NewReleased(OpEq, date)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrIllformedQuery), ShouldBeTrue)
			}
		})

		Convey("Rejects unknown operators", func() {
			_, err := NewReleased(CompareOp("~"), "2020-01-01")
			So(errors.Is(err, ErrIllformedQuery), ShouldBeTrue)
		})
	})
}

func TestNewLength(t *testing.T) {
	Convey("NewLength", t, func() {
		Convey("Accepts equality operators", func() {
			for _, op := range []CompareOp{OpEq, OpNeq} {
				l, err := NewLength(op, 3)
				So(err, ShouldBeNil)
				So(l, ShouldNotBeNil)
			}
		})

		Convey("Rejects ordering operators", func() {
			for _, op := range []CompareOp{OpLt, OpGt, OpGeq, OpLeq, CompareOp("~")} {
				_, err := NewLength(op, 3)
				So(errors.Is(err, ErrIllformedQuery), ShouldBeTrue)
			}
		})
	})
}

func TestFilterExpr(t *testing.T) {
	Convey("VNFilter expression translation", t, func() {
		Convey("A nil filter yields an empty expression", func() {
			var f *VNFilter
			So(f.expr(), ShouldResemble, []any{})
		})

		Convey("An empty filter yields an empty expression", func() {
			So((&VNFilter{}).expr(), ShouldResemble, []any{})
		})

		Convey("A single scalar field becomes one equality clause", func() {
			f := &VNFilter{AnimeID: 5}
			So(f.expr(), ShouldResemble, []any{"and", []any{"anime_id", "=", 5}})
		})

		Convey("The id field becomes one equality clause", func() {
			f := &VNFilter{ID: "v2002"}
			So(f.expr(), ShouldResemble, []any{"and", []any{"id", "=", "v2002"}})
		})

		Convey("A multi-element list field expands into one clause per element, all conjoined", func() {
			f := &VNFilter{Tag: []string{"g3998", "g7"}}
			So(f.expr(), ShouldResemble, []any{
				"and",
				[]any{"tag", "=", "g3998"},
				[]any{"tag", "=", "g7"},
			})
		})

		Convey("A released range filter is spliced in as [field, op, operand]", func() {
			released, err := NewReleased(OpGeq, "2020-01-01")
			So(err, ShouldBeNil)

			f := &VNFilter{Released: released}
			So(f.expr(), ShouldResemble, []any{"and", []any{"released", ">=", "2020-01-01"}})
		})

		Convey("A length filter is spliced in with its integer operand", func() {
			length, err := NewLength(OpNeq, 5)
			So(err, ShouldBeNil)

			f := &VNFilter{Length: length}
			So(f.expr(), ShouldResemble, []any{"and", []any{"length", "!=", 5}})
		})

		Convey("Mixed fields are emitted in declaration order under one conjunction", func() {
			released, err := NewReleased(OpLt, "2010-06-15")
			So(err, ShouldBeNil)

			f := &VNFilter{
				Lang:     []string{"en", "ja"},
				Released: released,
				Tag:      []string{"g7"},
				AnimeID:  33,
			}
			So(f.expr(), ShouldResemble, []any{
				"and",
				[]any{"lang", "=", "en"},
				[]any{"lang", "=", "ja"},
				[]any{"released", "<", "2010-06-15"},
				[]any{"tag", "=", "g7"},
				[]any{"anime_id", "=", 33},
			})
		})
	})
}
