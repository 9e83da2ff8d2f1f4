package loadtest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/trailboard/internal/adapters/http/api"
	service "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/internal/loadtest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given a server backed by the embedded datasets", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc, 100).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When running a small load test", func() {
			stats, err := loadtest.Run(ctx, &loadtest.Config{
				BaseURL:  srv.URL,
				Requests: 60,
				Workers:  4,
				Timeout:  5 * time.Second,
				Seed:     42,
			})

			Convey("Then every search should succeed and verify", func() {
				So(err, ShouldBeNil)
				So(stats.QueriesGenerated, ShouldEqual, 60)
				So(stats.Submitted, ShouldEqual, 60)
				So(stats.Successful, ShouldEqual, 60)
				So(stats.Mismatched, ShouldEqual, 0)
				So(stats.Failed, ShouldEqual, 0)
			})
		})

		Convey("When the service is unreachable", func() {
			_, err := loadtest.Run(ctx, &loadtest.Config{
				BaseURL:  "http://127.0.0.1:1",
				Requests: 1,
				Workers:  1,
				Timeout:  time.Second,
			})

			Convey("Then the health check should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
