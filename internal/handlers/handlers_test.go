package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"doordeck/internal/config"
	"doordeck/internal/dataset"
	"doordeck/internal/deck"
	"doordeck/internal/testhelpers"
)

func testRows(t *testing.T, n int) []dataset.Row {
	t.Helper()
	dir := t.TempDir()
	rows := make([]dataset.Row, n)
	for i := range rows {
		name := fmt.Sprintf("Villager %d", i+1)
		rows[i] = dataset.Row{
			Name:      name,
			Caption:   fmt.Sprintf("%d", 200+i),
			ImagePath: testhelpers.WriteImage(t, dir, fmt.Sprintf("v%d.jpg", i), 30, 30, color.White),
		}
	}
	return rows
}

func setupTestServer(t *testing.T, rows []dataset.Row, routerOpts *RouterOptions) (*httptest.Server, *config.Config) {
	t.Helper()
	layout, err := deck.NewLayout("adjusted", deck.LayoutOptions{})
	require.NoError(t, err)
	d, err := deck.NewBuilder(layout, nil).Build(context.Background(), rows)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Fetch.ImageDir = t.TempDir()
	h := New(d, rows, Options{
		Layout:       "adjusted",
		PreviewDir:   filepath.Join(t.TempDir(), "previews"),
		PreviewWidth: 300,
	}, zaptest.NewLogger(t))

	if routerOpts == nil {
		routerOpts = &RouterOptions{DisableRateLimiting: true}
	}
	routerOpts.Logger = zaptest.NewLogger(t)
	server := httptest.NewServer(SetupRouter(h, cfg, routerOpts))
	t.Cleanup(server.Close)
	return server, cfg
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestSummaries(t *testing.T) {
	rows := []dataset.Row{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	summaries := Summaries(rows, 3)
	require.Len(t, summaries, 2)
	assert.Equal(t, []string{"a", "b", "c"}, summaries[0].Names)
	assert.Equal(t, 2, summaries[1].Number)
	assert.Equal(t, []string{"d"}, summaries[1].Names)

	assert.Empty(t, Summaries(nil, 3))
}

func TestHomePage(t *testing.T) {
	server, _ := setupTestServer(t, testRows(t, 4), nil)

	resp, body := get(t, server.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	html := string(body)
	assert.Contains(t, html, "4 cards on 2 slides")
	assert.Contains(t, html, `id="slide-2"`)
	assert.Contains(t, html, "Villager 4")
	assert.Contains(t, html, server.URL+"/")
}

func TestSlidePreview(t *testing.T) {
	server, _ := setupTestServer(t, testRows(t, 4), nil)

	resp, body := get(t, server.URL+"/slide/2.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, format, err := image.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 300, img.Bounds().Dx())

	for _, path := range []string{"/slide/0.png", "/slide/3.png", "/slide/x.png"} {
		resp, _ := get(t, server.URL+path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestContactSheet(t *testing.T) {
	server, _ := setupTestServer(t, testRows(t, 7), nil)

	resp, body := get(t, server.URL+"/sheet.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, _, err := image.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, img.Bounds().Dx(), 300)
}

func TestDownloadDeck(t *testing.T) {
	server, _ := setupTestServer(t, testRows(t, 3), nil)

	resp, body := get(t, server.URL+"/deck.pptx")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pptxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="deck.pptx"`)

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["ppt/slides/slide1.xml"])
	assert.False(t, names["ppt/slides/slide2.xml"])
}

func TestQRCode(t *testing.T) {
	server, _ := setupTestServer(t, testRows(t, 1), nil)

	resp, body := get(t, server.URL+"/qr.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}

func TestHealthAndStatic(t *testing.T) {
	server, cfg := setupTestServer(t, testRows(t, 1), nil)
	testhelpers.WriteImage(t, cfg.Fetch.ImageDir, "resident_Ankha.jpg", 10, 10, color.White)

	resp, body := get(t, server.URL+"/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, _ = get(t, server.URL+"/static/resident_Ankha.jpg")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
}

func TestRateLimiting(t *testing.T) {
	rows := testRows(t, 1)
	layout, err := deck.NewLayout("classic", deck.LayoutOptions{})
	require.NoError(t, err)
	d, err := deck.NewBuilder(layout, nil).Build(context.Background(), rows)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateLimitBurst = 1
	h := New(d, rows, Options{PreviewDir: t.TempDir()}, nil)
	server := httptest.NewServer(SetupRouter(h, cfg, &RouterOptions{DisableRequestLogger: true}))
	defer server.Close()

	resp, _ := get(t, server.URL+"/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = get(t, server.URL+"/health/live")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
