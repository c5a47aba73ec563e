package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"musicbox/config"
	"musicbox/types"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// URL prefixes the media routes are mounted on
const (
	SongsURLPrefix      = "/media/songs"
	ThumbnailsURLPrefix = "/media/thumbnails"
)

// ThumbnailExt is the extension looked up for per-track thumbnails
const ThumbnailExt = ".jpg"

// ListerConfig is everything the lister needs to turn a directory into tracks
type ListerConfig struct {
	AudioDir            string
	ThumbnailDir        string
	Extensions          []string
	SongsURL            string
	ThumbnailsURL       string
	DefaultThumbnailURL string
	ReadTags            bool
}

// NewListerConfig maps the library configuration onto the lister's URL layout
func NewListerConfig(lib config.LibraryConfig) ListerConfig {
	thumbsURL := ThumbnailsURLPrefix
	if lib.ColocatedThumbnails {
		thumbsURL = SongsURLPrefix
	}

	return ListerConfig{
		AudioDir:            lib.AudioDir,
		ThumbnailDir:        lib.ThumbnailRoot(),
		Extensions:          lib.Extensions,
		SongsURL:            SongsURLPrefix,
		ThumbnailsURL:       thumbsURL,
		DefaultThumbnailURL: lib.DefaultThumbnailURL(),
		ReadTags:            lib.ReadTags,
	}
}

// Lister enumerates the audio directory on every call
type Lister interface {
	List(ctx context.Context) ([]types.Track, error)
	Search(ctx context.Context, query string) ([]types.Track, error)
	Find(ctx context.Context, filename string) (*types.Track, error)
	AudioDir() string
}

type lister struct {
	cfg    ListerConfig
	files  FileService
	logger *zap.Logger
}

// NewLister creates a lister; nothing is cached between calls
func NewLister(cfg ListerConfig, files FileService, logger *zap.Logger) Lister {
	return &lister{
		cfg:    cfg,
		files:  files,
		logger: logger,
	}
}

func (l *lister) AudioDir() string {
	return l.cfg.AudioDir
}

// List returns one track per recognised audio file, in file name order
// (os.ReadDir sorts its result). A missing audio directory is not an error.
func (l *lister) List(ctx context.Context) ([]types.Track, error) {
	entries, err := os.ReadDir(l.cfg.AudioDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Audio directory does not exist", zap.String("dir", l.cfg.AudioDir))
			return []types.Track{}, nil
		}
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	tracks := make([]types.Track, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() || !l.isAudio(entry.Name()) {
			continue
		}

		track, ok := l.buildTrack(entry.Name())
		if !ok {
			continue
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// Search matches the query against track names after case folding and
// NFC normalisation, so "café" finds "Café".
func (l *lister) Search(ctx context.Context, query string) ([]types.Track, error) {
	tracks, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(norm.NFC.String(strings.TrimSpace(query)))

	matches := make([]types.Track, 0)
	for _, track := range tracks {
		if strings.Contains(fold.String(norm.NFC.String(track.Name)), needle) {
			matches = append(matches, track)
		}
	}
	return matches, nil
}

// Find returns the track for an exact on-disk file name
func (l *lister) Find(ctx context.Context, filename string) (*types.Track, error) {
	tracks, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tracks {
		if tracks[i].Filename == filename {
			return &tracks[i], nil
		}
	}
	return nil, fmt.Errorf("track %q: %w", filename, ErrNotFound)
}

func (l *lister) isAudio(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range l.cfg.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (l *lister) buildTrack(filename string) (types.Track, bool) {
	path := filepath.Join(l.cfg.AudioDir, filename)

	// Stat follows symlinks; anything that is not a regular file is skipped.
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		if err != nil {
			l.logger.Debug("Skipping unreadable entry", zap.String("file", filename), zap.Error(err))
		}
		return types.Track{}, false
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	track := types.Track{
		Name:      base,
		File:      l.cfg.SongsURL + "/" + url.PathEscape(filename),
		Thumbnail: l.thumbnailURL(base),
		Filename:  filename,
		Format:    strings.TrimPrefix(strings.ToLower(ext), "."),
		Size:      info.Size(),
	}

	if l.cfg.ReadTags {
		track.Metadata = l.files.ExtractAudioMetadata(path)
	}

	return track, true
}

func (l *lister) thumbnailURL(base string) string {
	thumbName := base + ThumbnailExt
	info, err := os.Stat(filepath.Join(l.cfg.ThumbnailDir, thumbName))
	if err != nil || info.IsDir() {
		return l.cfg.DefaultThumbnailURL
	}
	return l.cfg.ThumbnailsURL + "/" + url.PathEscape(thumbName)
}
