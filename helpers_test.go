package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"musicbox/cmd"
	"musicbox/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestHelper provides utilities for testing the music player server
type TestHelper struct {
	Server      *httptest.Server
	TestDataDir string
	SongsDir    string
	ThumbsDir   string
	Config      *config.Config
	App         *cmd.App
	cancel      context.CancelFunc
}

// NewTestHelper creates a server over a temporary static/ tree with
// separate songs/ and thumbnails/ directories.
func NewTestHelper(t *testing.T) *TestHelper {
	return newTestHelper(t, false)
}

// NewColocatedTestHelper keeps thumbnails next to the audio files
func NewColocatedTestHelper(t *testing.T) *TestHelper {
	return newTestHelper(t, true)
}

func newTestHelper(t *testing.T, colocated bool) *TestHelper {
	testDir := t.TempDir()
	staticDir := filepath.Join(testDir, "static")
	songsDir := filepath.Join(staticDir, "songs")
	thumbsDir := filepath.Join(staticDir, "thumbnails")

	require.NoError(t, os.MkdirAll(songsDir, 0755))
	require.NoError(t, os.MkdirAll(thumbsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "default.jpg"), []byte("default-image"), 0644))

	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Library.AudioDir = songsDir
	cfg.Library.ThumbnailDir = thumbsDir
	cfg.Library.StaticDir = staticDir
	cfg.Library.ColocatedThumbnails = colocated
	cfg.Library.ReadTags = false
	require.NoError(t, cfg.Validate())

	app, err := cmd.NewApp(cfg, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go app.Hub.Run(ctx)

	return &TestHelper{
		Server:      httptest.NewServer(app.Router),
		TestDataDir: testDir,
		SongsDir:    songsDir,
		ThumbsDir:   thumbsDir,
		Config:      cfg,
		App:         app,
		cancel:      cancel,
	}
}

// Cleanup cleans up test resources
func (h *TestHelper) Cleanup(t *testing.T) {
	if h.Server != nil {
		h.Server.Close()
	}
	h.cancel()
}

// MakeRequest makes an HTTP request to the test server
func (h *TestHelper) MakeRequest(t *testing.T, method, path string, headers map[string]string) *http.Response {
	req, err := http.NewRequest(method, h.Server.URL+path, nil)
	require.NoError(t, err)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

// GetBody makes a GET request and returns the response body
func (h *TestHelper) GetBody(t *testing.T, path string, headers map[string]string) (*http.Response, []byte) {
	resp := h.MakeRequest(t, http.MethodGet, path, headers)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

// GetJSON makes a GET request and unmarshals JSON response
func (h *TestHelper) GetJSON(t *testing.T, path string, target interface{}) *http.Response {
	resp, body := h.GetBody(t, path, nil)

	if target != nil {
		require.NoError(t, json.Unmarshal(body, target), string(body))
	}

	return resp
}

// ConnectWebSocket connects to a WebSocket endpoint
func (h *TestHelper) ConnectWebSocket(t *testing.T, path string) *websocket.Conn {
	wsURL := "ws" + h.Server.URL[len("http"):] + path

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn
}

// CreateSong writes a file into the songs directory
func (h *TestHelper) CreateSong(t *testing.T, name string, content []byte) {
	require.NoError(t, os.WriteFile(filepath.Join(h.SongsDir, name), content, 0644))
}

// CreateThumbnail writes a file into the thumbnail directory in use
func (h *TestHelper) CreateThumbnail(t *testing.T, name string, content []byte) {
	require.NoError(t, os.WriteFile(filepath.Join(h.Config.Library.ThumbnailRoot(), name), content, 0644))
}

// createMinimalMP3File creates a minimal MP3-looking payload for testing
func createMinimalMP3File() []byte {
	return []byte("ID3\x03\x00\x00\x00\x00\x00\x00fake-mp3-frames")
}
