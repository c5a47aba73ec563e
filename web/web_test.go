package web

import (
	"bytes"
	"testing"

	"musicbox/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesRenderSizes(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "index.html", map[string]interface{}{
		"songs": []types.Track{{
			Name:      "Song1",
			File:      "/media/songs/Song1.mp3",
			Thumbnail: "/static/default.jpg",
			Format:    "mp3",
			Size:      3 * 1024 * 1024,
			Metadata:  &types.AudioMetadata{Artist: "Someone"},
		}},
		"count": 1,
	})
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "3.0 MiB")
	assert.Contains(t, page, "Someone")
	assert.Contains(t, page, `src="/media/songs/Song1.mp3"`)
}
