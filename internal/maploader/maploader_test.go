package maploader

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/boundaryrobots/mapexplore/internal/cellmap"
)

func TestParseEmptyBox(t *testing.T) {
	Convey("Given the 6x4 empty box map", t, func() {
		raw := "######\n#....#\n#....#\n######\n"
		gm, err := Parse(strings.NewReader(raw))

		Convey("It parses without error into the expected dimensions and cells", func() {
			So(err, ShouldBeNil)
			So(gm.Width, ShouldEqual, 6)
			So(gm.Height, ShouldEqual, 4)
			So(gm.At(0, 0), ShouldEqual, cellmap.Obstacle)
			So(gm.At(1, 1), ShouldEqual, cellmap.Empty)
		})
	})
}

func TestParseEmptyFileIsAnError(t *testing.T) {
	Convey("Given an empty file", t, func() {
		_, err := Parse(strings.NewReader(""))
		Convey("Parse reports Empty", func() {
			So(err, ShouldNotBeNil)
			So(err.(*LoadError).Kind, ShouldEqual, Empty)
		})
	})
}

func TestParseInconsistentRowLength(t *testing.T) {
	Convey("Given rows of different lengths", t, func() {
		_, err := Parse(strings.NewReader("####\n#..#\n##\n"))
		Convey("Parse reports InconsistentRowLength", func() {
			So(err, ShouldNotBeNil)
			So(err.(*LoadError).Kind, ShouldEqual, InconsistentRowLength)
		})
	})
}

func TestParseInvalidCharacter(t *testing.T) {
	Convey("Given a row containing an unrecognized character", t, func() {
		_, err := Parse(strings.NewReader("####\n#.X#\n####\n"))
		Convey("Parse reports InvalidCharacter with its position", func() {
			So(err, ShouldNotBeNil)
			le := err.(*LoadError)
			So(le.Kind, ShouldEqual, InvalidCharacter)
			So(le.Line, ShouldEqual, 2)
			So(le.Char, ShouldEqual, 'X')
		})
	})
}

func TestParseUnexploredCharacters(t *testing.T) {
	Convey("Given a row using space and ? for unexplored cells", t, func() {
		gm, err := Parse(strings.NewReader("####\n# ?#\n####\n"))
		Convey("Both map to Unexplored", func() {
			So(err, ShouldBeNil)
			So(gm.At(1, 1), ShouldEqual, cellmap.Unexplored)
			So(gm.At(2, 1), ShouldEqual, cellmap.Unexplored)
		})
	})
}
