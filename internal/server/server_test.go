package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/tdlc-stats/internal/config"
	"github.com/JustJay7/tdlc-stats/internal/database"
	"github.com/JustJay7/tdlc-stats/pkg/logger"
)

func newTestServer(t *testing.T, limit int) http.Handler {
	t.Helper()
	db, err := database.Initialize(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		LogLevel:       "error",
		RequestTimeout: 5 * time.Second,
		APIRateLimit:   limit,
		APIRateWindow:  time.Minute,
		HearingsPath:   t.TempDir() + "/missing.csv",
	}
	return New(cfg, db, logger.NewNop()).Handler()
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestServer(t, 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc")
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, 10)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/causas/total-causas", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMissingCalendarIsUnavailable(t *testing.T) {
	h := newTestServer(t, 10)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calendario", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
