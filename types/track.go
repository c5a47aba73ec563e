package types

// Track is one playable audio file as exposed by the HTML page and the JSON API
type Track struct {
	Name      string         `json:"name"`
	File      string         `json:"file"`
	Thumbnail string         `json:"thumbnail"`
	Filename  string         `json:"filename"`
	Format    string         `json:"format"` // "mp3", "wav", "ogg"
	Size      int64          `json:"size"`
	Metadata  *AudioMetadata `json:"metadata,omitempty"`
}

// AudioMetadata represents embedded tag data for an audio file
type AudioMetadata struct {
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	TrackNumber int    `json:"trackNumber,omitempty"`
}
