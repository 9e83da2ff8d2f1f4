package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	app "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/internal/config"
	"github.com/okian/trailboard/pkg/logger"
	"github.com/okian/trailboard/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			t.Setenv("TRAILBOARD_ADDR", ":8181")
			t.Setenv("TRAILBOARD_PAGE_SIZE", "20")

			convey.Convey("Then the overrides should apply", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8181")
				convey.So(cfg.PageSize, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When wiring the handler", func() {
			ctx := context.Background()
			cfg := config.New(ctx)
			svc := app.New(app.WithPageSize(cfg.PageSize), app.WithMaxPageSize(cfg.MaxPageSize))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()
			handler := newHandler(ctx, cfg, svc)

			get := func(target string) *httptest.ResponseRecorder {
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
				return w
			}

			convey.Convey("Then every route should be reachable", func() {
				for _, target := range []string{
					"/", "/static/app.js", "/healthz", "/stats", "/api-docs", "/openapi.yaml",
					"/api/runners", "/api/runners/75k", "/api/runners/55k/facets",
					"/api/runners/55k/search?gender=M&page=1",
				} {
					convey.So(get(target).Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("And an unsupported distance should be a 400", func() {
				convey.So(get("/api/runners/42k").Code, convey.ShouldEqual, http.StatusBadRequest)
			})

			convey.Convey("And unknown paths should be a 404", func() {
				convey.So(get("/results").Code, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When updating once", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)

			convey.Convey("Then the goroutine gauge should be exported", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "trailboard_system_goroutines" {
						found = true
					}
				}
				convey.So(found, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			convey.Convey("Then the updater should return", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMain(m *testing.M) {
	// Keep a developer's .env or config file from leaking into the tests.
	_ = os.Unsetenv("TRAILBOARD_CONFIG")
	os.Exit(m.Run())
}
