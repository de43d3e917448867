package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eudr-checker/config"
	"eudr-checker/eudr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyCatalog struct{}

func (emptyCatalog) Search(context.Context, *eudr.SceneQuery) ([]*eudr.Scene, error) {
	return nil, nil
}

type noTiles struct{}

func (noTiles) TileJSON(context.Context, string, string) (json.RawMessage, error) {
	return nil, nil
}

func testChecker() *eudr.Checker {
	return &eudr.Checker{
		Catalog:    emptyCatalog{},
		Tiles:      noTiles{},
		MaxCloud:   20,
		RecentDays: 180,
		Now: func() time.Time {
			return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		},
	}
}

func TestRouter(t *testing.T) {
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	router := newRouter(cfg, testChecker())

	for _, tc := range []struct {
		method, path string
		code         int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/healthz", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/check", http.StatusMethodNotAllowed},
		{"GET", "/report", http.StatusMethodNotAllowed},
		{"GET", "/nope", http.StatusNotFound},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.code, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.geojson")
	require.NoError(t, os.WriteFile(good, []byte(`{"type": "Point", "coordinates": [10, 45]}`), 0o644))
	assert.NoError(t, checkFiles(context.Background(), testChecker(), []string{good}))

	bad := filepath.Join(dir, "bad.geojson")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	err := checkFiles(context.Background(), testChecker(), []string{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.geojson")

	assert.Error(t, checkFiles(context.Background(), testChecker(), []string{filepath.Join(dir, "missing.geojson")}))
}

func TestListenAddr(t *testing.T) {
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", listenAddr(cfg))

	defer func(p int) { *port = p }(*port)
	*port = 9090
	assert.Equal(t, ":9090", listenAddr(cfg))
	assert.Equal(t, 8080, cfg.Port)
}
