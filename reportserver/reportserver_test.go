package reportserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eudr-checker/eudr"
	"eudr-checker/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	pre, recent []*eudr.Scene
}

func (f *fakeCatalog) Search(_ context.Context, q *eudr.SceneQuery) ([]*eudr.Scene, error) {
	if strings.HasPrefix(q.Datetime, "../") {
		return f.pre, nil
	}
	return f.recent, nil
}

type fakeTiles struct{}

func (fakeTiles) TileJSON(_ context.Context, href, asset string) (json.RawMessage, error) {
	return json.RawMessage(`{"tiles": ["https://titiler.example/tiles/` + href + `/{z}/{x}/{y}"]}`), nil
}

func newServer(cat eudr.Catalog) *ReportServer {
	c := &eudr.Checker{
		Catalog:    cat,
		Tiles:      fakeTiles{},
		MaxCloud:   20,
		Asset:      "visual",
		RecentDays: 30,
		StaticMap:  eudr.StaticMapOptions{Key: "k", Zoom: 16, Size: "640x640"},
		Now: func() time.Time {
			return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		},
	}
	return New(c, "http://titiler:8000", 1<<20)
}

func upload(t *testing.T, content string) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(parcel.UploadField, "parcel.geojson")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/report", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestReport(t *testing.T) {
	pre, recent := 4.5, 11.0
	preAt, recentAt := "2020-08-14T10:00:00Z", "2025-02-11T10:00:00Z"
	cat := &fakeCatalog{
		pre:    []*eudr.Scene{{ID: "S2A_OLD", Datetime: &preAt, CloudCover: &pre, Href: "old"}},
		recent: []*eudr.Scene{{ID: "S2B_NEW", Datetime: &recentAt, CloudCover: &recent, Href: "new"}},
	}

	rec := httptest.NewRecorder()
	newServer(cat).ServeHTTP(rec, upload(t, `{"type": "Feature", "properties": {"name": "</script><b>"},
		"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	page := rec.Body.String()
	assert.Contains(t, page, "S2A_OLD")
	assert.Contains(t, page, "S2B_NEW")
	assert.Contains(t, page, "4.5% cloud")
	assert.Contains(t, page, "2020-12-31")
	assert.Contains(t, page, "2025-01-30")
	assert.Contains(t, page, `id="pre"`)
	assert.Contains(t, page, `id="recent"`)
	assert.Contains(t, page, `titiler.example`)
	assert.Contains(t, page, "maps.googleapis.com")
	assert.NotContains(t, page, "</script><b>")
}

func TestReportNoScenes(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&fakeCatalog{}).ServeHTTP(rec, upload(t, `{"type": "Point", "coordinates": [10, 45]}`))
	require.Equal(t, http.StatusOK, rec.Code)

	page := rec.Body.String()
	assert.NotContains(t, page, `id="pre"`)
	assert.NotContains(t, page, `id="recent"`)
	assert.Contains(t, page, "No scene below the cloud threshold.")
}

func TestReportInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&fakeCatalog{}).ServeHTTP(rec, upload(t, `not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid GeoJSON")
}
