package types_test

import (
	"encoding/json"
	"errors"
	"testing"

	types "github.com/okian/trailboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDistance(t *testing.T) {
	Convey("Given distance identifiers", t, func() {
		Convey("When the identifier is supported", func() {
			d75, err75 := types.ParseDistance("75k")
			d55, err55 := types.ParseDistance("55k")

			Convey("Then it should parse", func() {
				So(err75, ShouldBeNil)
				So(err55, ShouldBeNil)
				So(d75, ShouldEqual, types.Distance75K)
				So(d55, ShouldEqual, types.Distance55K)
			})
		})

		Convey("When the identifier is not supported", func() {
			_, err := types.ParseDistance("42k")

			Convey("Then it should be a validation failure", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, types.ErrUnsupportedDistance), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "42k")
			})
		})

		Convey("When the identifier differs only by case", func() {
			_, err := types.ParseDistance("75K")

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, types.ErrUnsupportedDistance), ShouldBeTrue)
			})
		})
	})
}

func TestRunnerJSON(t *testing.T) {
	Convey("Given a source document with sentinel values", t, func() {
		doc := `[["Alice",{"bib":"101","age":30,"nationality":"USA","gender":"F","club":"None","pi":612,"flag":"https://flags/usa.png","profile":"None"}]]`

		Convey("When decoding it", func() {
			var ds types.Dataset
			err := json.Unmarshal([]byte(doc), &ds)

			Convey("Then absent values should be explicit", func() {
				So(err, ShouldBeNil)
				So(ds, ShouldHaveLength, 1)
				So(ds[0].Name, ShouldEqual, "Alice")
				So(ds[0].Bib, ShouldEqual, "101")
				So(ds[0].Age, ShouldEqual, 30)
				So(ds[0].Gender, ShouldEqual, types.Female)
				So(ds[0].PI, ShouldEqual, 612.0)
				So(ds[0].Club.Valid, ShouldBeFalse)
				So(ds[0].Profile.Valid, ShouldBeFalse)
				flag, ok := ds[0].Flag.Get()
				So(ok, ShouldBeTrue)
				So(flag, ShouldEqual, "https://flags/usa.png")
			})

			Convey("And encoding it again should restore the pair form", func() {
				out, err := json.Marshal(ds)
				So(err, ShouldBeNil)

				var raw [][]any
				So(json.Unmarshal(out, &raw), ShouldBeNil)
				So(raw[0][0], ShouldEqual, "Alice")
				details := raw[0][1].(map[string]any)
				So(details["club"], ShouldEqual, "None")
				So(details["profile"], ShouldEqual, "None")
			})
		})
	})

	Convey("Given malformed runner documents", t, func() {
		Convey("When the pair has the wrong arity", func() {
			var r types.Runner
			err := json.Unmarshal([]byte(`["Alice"]`), &r)

			Convey("Then decoding should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the runner is an object", func() {
			var r types.Runner
			err := json.Unmarshal([]byte(`{"name":"Alice"}`), &r)

			Convey("Then decoding should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestOptional(t *testing.T) {
	Convey("Given optional values", t, func() {
		Convey("Then Or should fall back only when absent", func() {
			So(types.None().Or("placeholder"), ShouldEqual, "placeholder")
			So(types.Some("Team Salomon").Or("placeholder"), ShouldEqual, "Team Salomon")
		})

		Convey("Then null and empty strings should decode as absent", func() {
			var a, b types.Optional
			So(json.Unmarshal([]byte(`null`), &a), ShouldBeNil)
			So(json.Unmarshal([]byte(`""`), &b), ShouldBeNil)
			So(a.Valid, ShouldBeFalse)
			So(b.Valid, ShouldBeFalse)
		})
	})
}
