package loadtest

import (
	"testing"

	service "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func runner(name, bib string, age int, g types.Gender, nat string) types.Runner {
	return types.Runner{Name: name, Details: types.Details{Bib: bib, Age: age, Gender: g, Nationality: nat}}
}

func entry(rank int, r types.Runner, cat string) types.Entry {
	return types.Entry{Rank: rank, Category: cat, Runner: r}
}

func TestVerifyPage(t *testing.T) {
	Convey("Given a query for female runners on page 2", t, func() {
		q := Query{Distance: types.Distance55K, Gender: types.Female, Page: 2, PageSize: 2}
		good := service.Page{
			Total: 3, Page: 2, PageSize: 2, PageCount: 2,
			Entries: []types.Entry{entry(3, runner("Ana", "7", 30, types.Female, "ESP"), "20-34F")},
		}

		Convey("When the page is consistent", func() {
			Convey("Then it should verify", func() {
				So(verifyPage(q, good), ShouldBeNil)
			})
		})

		Convey("When the rank is off", func() {
			bad := good
			bad.Entries = []types.Entry{entry(1, good.Entries[0].Runner, "20-34F")}

			Convey("Then it should be rejected", func() {
				So(verifyPage(q, bad), ShouldNotBeNil)
			})
		})

		Convey("When a row does not match the gender filter", func() {
			bad := good
			bad.Entries = []types.Entry{entry(3, runner("Bo", "8", 30, types.Male, "ESP"), "20-34M")}

			Convey("Then it should be rejected", func() {
				So(verifyPage(q, bad), ShouldNotBeNil)
			})
		})

		Convey("When the category label is wrong", func() {
			bad := good
			bad.Entries = []types.Entry{entry(3, good.Entries[0].Runner, "V1F")}

			Convey("Then it should be rejected", func() {
				So(verifyPage(q, bad), ShouldNotBeNil)
			})
		})

		Convey("When the page count disagrees with the total", func() {
			bad := good
			bad.PageCount = 5

			Convey("Then it should be rejected", func() {
				So(verifyPage(q, bad), ShouldNotBeNil)
			})
		})
	})

	Convey("Given an empty result", t, func() {
		q := Query{Distance: types.Distance75K, Search: "ZZZ", Page: 1}

		Convey("Then zero pages and no entries should verify", func() {
			So(verifyPage(q, service.Page{Page: 1, PageSize: 10}), ShouldBeNil)
		})

		Convey("Then a stray entry should be rejected", func() {
			p := service.Page{Page: 1, PageSize: 10, Entries: []types.Entry{entry(1, runner("A", "1", 30, types.Male, "FRA"), "M")}}
			So(verifyPage(q, p), ShouldNotBeNil)
		})
	})
}
