package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMetadataFromName tests name-based title extraction
func TestMetadataFromName(t *testing.T) {
	tests := []struct {
		name                string
		filePath            string
		expectedTitle       string
		expectedTrackNumber int
	}{
		{
			name:                "track number with dash",
			filePath:            "songs/01 - Song Title.mp3",
			expectedTitle:       "Song Title",
			expectedTrackNumber: 1,
		},
		{
			name:                "track number with dot",
			filePath:            "3. Track Name.ogg",
			expectedTitle:       "Track Name",
			expectedTrackNumber: 3,
		},
		{
			name:                "no track number",
			filePath:            "Song Title.wav",
			expectedTitle:       "Song Title",
			expectedTrackNumber: 0,
		},
		{
			name:                "number only",
			filePath:            "1999.mp3",
			expectedTitle:       "1999",
			expectedTrackNumber: 0,
		},
		{
			name:                "unicode title",
			filePath:            "07 - 夜に駆ける.mp3",
			expectedTitle:       "夜に駆ける",
			expectedTrackNumber: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := metadataFromName(tt.filePath)
			assert.Equal(t, tt.expectedTitle, metadata.Title)
			assert.Equal(t, tt.expectedTrackNumber, metadata.TrackNumber)
			assert.Empty(t, metadata.Artist)
		})
	}
}

// TestGetContentType tests MIME type detection
func TestGetContentType(t *testing.T) {
	fs := NewFileService(zap.NewNop())

	tests := []struct {
		filePath     string
		expectedType string
	}{
		{"song.mp3", "audio/mpeg"},
		{"song.MP3", "audio/mpeg"},
		{"song.wav", "audio/wav"},
		{"song.ogg", "audio/ogg"},
		{"cover.jpg", "image/jpeg"},
		{"cover.JPEG", "image/jpeg"},
		{"cover.png", "image/png"},
		{"notes.txt", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			assert.Equal(t, tt.expectedType, fs.GetContentType(tt.filePath))
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	fs := NewFileService(zap.NewNop())

	valid := []string{"song.mp3", "My Song.mp3", "sub/dir/song.ogg", "..hidden.mp3", "a..b.mp3"}
	for _, p := range valid {
		assert.NoError(t, fs.ValidateFilePath(p), p)
	}

	invalid := []string{"", "   ", "/etc/passwd", "../secret.mp3", "sub/../../secret.mp3", ".."}
	for _, p := range invalid {
		assert.Error(t, fs.ValidateFilePath(p), p)
	}

	assert.ErrorIs(t, fs.ValidateFilePath("a/../../b.mp3"), ErrPathTraversal)
}

func TestResolve(t *testing.T) {
	fs := NewFileService(zap.NewNop())
	root := t.TempDir()

	resolved, err := fs.Resolve(root, "My Song.mp3")
	require.NoError(t, err)

	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(absRoot, "My Song.mp3"), resolved)

	_, err = fs.Resolve(root, "../outside.mp3")
	assert.ErrorIs(t, err, ErrPathTraversal)

	_, err = fs.Resolve(root, "/etc/passwd")
	assert.Error(t, err)
}

// TestExtractAudioMetadataWithCorruptedFiles falls back to the file name
func TestExtractAudioMetadataWithCorruptedFiles(t *testing.T) {
	fs := NewFileService(zap.NewNop())
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"empty file", "01 - Empty.mp3", []byte{}},
		{"random bytes", "01 - Empty.mp3", []byte{0x00, 0x01, 0x02, 0xff}},
		{"truncated id3 header", "01 - Empty.mp3", []byte("ID3\x03\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, tt.content, 0644))

			metadata := fs.ExtractAudioMetadata(path)
			require.NotNil(t, metadata)
			assert.Equal(t, "Empty", metadata.Title)
			assert.Equal(t, 1, metadata.TrackNumber)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		metadata := fs.ExtractAudioMetadata(filepath.Join(dir, "02 - Gone.mp3"))
		require.NotNil(t, metadata)
		assert.Equal(t, "Gone", metadata.Title)
	})
}
