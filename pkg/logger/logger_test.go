package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the logger package", t, func() {
		Convey("When initialising with defaults", func() {
			err := Init()

			Convey("Then a global logger should be available", func() {
				So(err, ShouldBeNil)
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialising with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat("json")), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "dataset loaded", String("distance", "75k"), Int("runners", 25))

			Convey("Then the entry should carry the fields and the source", func() {
				var entry map[string]any
				So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
				So(entry["msg"], ShouldEqual, "dataset loaded")
				So(entry["distance"], ShouldEqual, "75k")
				So(entry["runners"], ShouldEqual, 25.0)
				So(entry["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging with a request id in the context", func() {
			Named("api").Warn(WithRequestID(ctx, "req-1"), "bad request", Error(errors.New("boom")))

			Convey("Then the id and logger name should be attached", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, `"request_id":"req-1"`)
				So(out, ShouldContainSubstring, `"logger":"api"`)
			})
		})

		Convey("When the level filters the entry out", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			So(SetLevelString("info"), ShouldBeNil)

			Convey("Then nothing should be written", func() {
				So(strings.TrimSpace(buf.String()), ShouldBeEmpty)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Convey("Then known names should be accepted", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", " error "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown names should be rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given contexts", t, func() {
		Convey("Then RequestID should round-trip through the context", func() {
			So(RequestID(context.Background()), ShouldBeEmpty)
			So(RequestID(WithRequestID(context.Background(), "abc")), ShouldEqual, "abc")
		})
	})
}
