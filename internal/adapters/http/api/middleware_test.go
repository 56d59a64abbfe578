package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/activities/internal/adapters/http/api"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler wrapped with metrics", t, func() {
		handler := api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}, "middleware_test")

		Convey("When it serves a request", func() {
			before, _ := testutil.GatherAndCount(metrics.GetRegistry(), "mergington_activities_http_requests_total")
			handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
			after, _ := testutil.GatherAndCount(metrics.GetRegistry(), "mergington_activities_http_requests_total")

			Convey("Then a request series is recorded for the endpoint", func() {
				So(after, ShouldBeGreaterThan, before)
			})
		})
	})
}

func TestLoggingMiddleware(t *testing.T) {
	Convey("Given a logging middleware writing JSON", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithFormat("json"), logger.WithOutput(&buf)), ShouldBeNil)
		defer func() { _ = logger.Init() }()

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("ok"))
		})
		handler := api.LoggingMiddleware(logger.Get(), next)

		Convey("When a request is served", func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/activities/x/signup", nil))

			Convey("Then method, path, and status are logged", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, `"msg":"request"`)
				So(out, ShouldContainSubstring, `"method":"POST"`)
				So(out, ShouldContainSubstring, `"path":"/activities/x/signup"`)
				So(out, ShouldContainSubstring, `"status":201`)
				So(out, ShouldContainSubstring, `"bytes":2`)
			})
		})
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	Convey("Given CORS restricted to one origin", t, func() {
		handler := api.CORS([]string{"https://mergington.edu/"}, next)

		Convey("When the origin is allowed", func() {
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			req.Header.Set("Origin", "https://mergington.edu")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://mergington.edu")
		})

		Convey("When the origin is not allowed", func() {
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			req.Header.Set("Origin", "https://evil.example")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})

		Convey("When a preflight arrives", func() {
			req := httptest.NewRequest(http.MethodOptions, "/activities/Chess%20Club/signup", nil)
			req.Header.Set("Origin", "https://mergington.edu")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, "DELETE")
		})
	})

	Convey("Given a wildcard origin", t, func() {
		handler := api.CORS([]string{"*"}, next)
		req := httptest.NewRequest(http.MethodGet, "/activities", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:3000")
	})

	Convey("Given no allowed origins", t, func() {
		req := httptest.NewRequest(http.MethodGet, "/activities", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		api.CORS(nil, next).ServeHTTP(w, req)

		So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
	})
}
