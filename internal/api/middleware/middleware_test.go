package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/pkg/metrics"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines map[string][]string
}

func (l *recordingLogger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lines == nil {
		l.lines = map[string][]string{}
	}
	l.lines[level] = append(l.lines[level], fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Info(format string, v ...interface{})  { l.add("info", format, v...) }
func (l *recordingLogger) Warn(format string, v ...interface{})  { l.add("warn", format, v...) }
func (l *recordingLogger) Error(format string, v ...interface{}) { l.add("error", format, v...) }

func newRouter(m *metrics.Metrics, logger Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, AccessLog(logger), MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["bookingId"] == "0" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

func TestMiddleware_MetricsUseRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	router := newRouter(m, &recordingLogger{})

	for _, path := range []string{"/bookings/1", "/bookings/2", "/bookings/0"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/bookings/{bookingId}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/bookings/{bookingId}", "404")))
}

func TestMiddleware_AccessLogLevels(t *testing.T) {
	logger := &recordingLogger{}
	router := newRouter(metrics.NewWithRegistry("test", prometheus.NewRegistry()), logger)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/0", nil))

	require.Len(t, logger.lines["info"], 1)
	require.Len(t, logger.lines["warn"], 1)
	assert.Contains(t, logger.lines["warn"][0], "status=404")
}

func TestRequestID(t *testing.T) {
	router := newRouter(metrics.NewWithRegistry("test", prometheus.NewRegistry()), &recordingLogger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/1", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
