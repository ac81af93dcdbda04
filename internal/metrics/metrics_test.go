package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/datasweeper/internal/core"
)

func TestObserver(t *testing.T) {
	m := New()

	m.FileLoaded(".csv")
	m.FileLoaded(".csv")
	m.FileRejected("FILE002")
	m.StageEnabled(core.StageDedupe)
	m.Exported(core.FormatExcel)
	m.Workspaces(3)
	m.RunCompleted(5 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.filesLoaded.WithLabelValues(".csv")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesRejected.WithLabelValues("FILE002")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stages.WithLabelValues("dedupe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("Excel")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.workspaces))
	assert.Equal(t, 1, testutil.CollectAndCount(m.runDuration))
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.FileLoaded(".xlsx")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `datasweeper_files_loaded_total{ext=".xlsx"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
