package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/trailboard/internal/adapters/repository"
	service "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

const shortField = `[
  ["Ana Lopez", {"bib": "301", "age": 29, "nationality": "ESP", "gender": "F", "club": "None", "pi": 720, "flag": "None", "profile": "None"}],
  ["Ben Hart", {"bib": "302", "age": 41, "nationality": "GBR", "gender": "M", "club": "Peak RC", "pi": 700, "flag": "None", "profile": "None"}],
  ["Carla Rossi", {"bib": "303", "age": 58, "nationality": "ITA", "gender": "F", "club": "None", "pi": 640, "flag": "None", "profile": "None"}],
  ["Dario Neri", {"bib": "304", "age": 67, "nationality": "ITA", "gender": "M", "club": "None", "pi": 610, "flag": "None", "profile": "None"}]
]`

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service reading datasets from a directory", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "runners-55k.json")
		So(os.WriteFile(path, []byte(shortField), 0o600), ShouldBeNil)

		svc := service.New(service.WithDataDir(dir), service.WithPageSize(2))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When browsing the 55k file", func() {
			page, err := svc.Search(ctx, "55k", service.SearchParams{Page: 2})
			So(err, ShouldBeNil)

			Convey("Then paging should follow the configured size", func() {
				So(page.Total, ShouldEqual, 4)
				So(page.PageCount, ShouldEqual, 2)
				So(page.Entries[0].Rank, ShouldEqual, 3)
				So(page.Entries[0].Category, ShouldEqual, "F")
				So(page.Entries[1].Category, ShouldEqual, "65+M")
			})
		})

		Convey("When combining a category with a search", func() {
			page, err := svc.Search(ctx, "55k", service.SearchParams{
				Selection: query.Selection{Nationality: "ITA"},
				Query:     "NERI",
			})
			So(err, ShouldBeNil)

			Convey("Then only the conjunction should match", func() {
				So(page.Total, ShouldEqual, 1)
				So(page.Entries[0].Runner.Bib, ShouldEqual, "304")
			})
		})

		Convey("When the file changes on disk", func() {
			So(os.WriteFile(path, []byte(`[]`), 0o600), ShouldBeNil)
			ds, err := svc.Runners(ctx, "55k")

			Convey("Then the next read should see the new content", func() {
				So(err, ShouldBeNil)
				So(ds, ShouldBeEmpty)
			})
		})

		Convey("When a distance has no file", func() {
			_, err := svc.Runners(ctx, "75k")

			Convey("Then it should be reported as not found", func() {
				So(errors.Is(err, repository.ErrDatasetNotFound), ShouldBeTrue)
			})
		})

		Convey("When reading stats", func() {
			_, _ = svc.Runners(ctx, "55k")
			stats := svc.GetStats()

			Convey("Then the file source should be reported", func() {
				So(stats["source"], ShouldEqual, "file")
				So(stats["datasets"], ShouldResemble, map[string]int{"55k": 4})
			})
		})
	})
}
