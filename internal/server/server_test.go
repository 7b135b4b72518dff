package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnanigans/linemap/pkg/linemap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	srv, err := New(linemap.DefaultConfig(), logger)
	require.NoError(t, err)
	return srv
}

func TestHandleMap(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(MapRequest{
		Old: "a\nb\nc\n",
		New: "a\nc\n",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/map", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp MapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Mappings, 3)

	// Line 1 maps to 1, line 2 is deleted, line 3 maps to 2.
	assert.Equal(t, 1, *resp.Mappings[0].New)
	assert.Nil(t, resp.Mappings[1].New)
	assert.Equal(t, 2, *resp.Mappings[2].New)
}

func TestHandleMapRejectsGet(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/map", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleMapRejectsBadBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/map", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMapEmptyBothSides(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(MapRequest{Old: "", New: ""})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/map", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Mappings)
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := linemap.DefaultConfig()
	cfg.ContextWindowSize = 0
	_, err := New(cfg, nil)
	require.Error(t, err)
}
