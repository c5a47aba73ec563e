package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"musicbox/config"
	"musicbox/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListTracks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"01 - First.mp3", "02 - Second.ogg", "cover.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	cfg := config.Default()
	cfg.Library.AudioDir = dir
	cfg.Library.ThumbnailDir = ""
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	require.NoError(t, ListTracks(context.Background(), cfg, zap.NewNop(), &out, io.Discard))

	var tracks []types.Track
	require.NoError(t, json.Unmarshal(out.Bytes(), &tracks))
	require.Len(t, tracks, 2)

	assert.Equal(t, "01 - First", tracks[0].Name)
	require.NotNil(t, tracks[0].Metadata)
	assert.Equal(t, "First", tracks[0].Metadata.Title)
	assert.Equal(t, 2, tracks[1].Metadata.TrackNumber)
}

func TestListTracksWithoutTags(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.wav"), []byte("x"), 0644))

	cfg := config.Default()
	cfg.Library.AudioDir = dir
	cfg.Library.ReadTags = false
	require.NoError(t, cfg.Validate())

	var out, progress bytes.Buffer
	require.NoError(t, ListTracks(context.Background(), cfg, zap.NewNop(), &out, &progress))

	var tracks []types.Track
	require.NoError(t, json.Unmarshal(out.Bytes(), &tracks))
	require.Len(t, tracks, 1)
	assert.Nil(t, tracks[0].Metadata)
	assert.Empty(t, progress.String())
}

func TestListTracksMissingDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Library.AudioDir = filepath.Join(t.TempDir(), "missing")
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	require.NoError(t, ListTracks(context.Background(), cfg, zap.NewNop(), &out, io.Discard))
	assert.JSONEq(t, "[]", out.String())
}
