package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"musicbox/types"

	"github.com/dhowden/tag"
	"go.uber.org/zap"
)

var (
	// ErrPathTraversal is returned for paths escaping the served root
	ErrPathTraversal = errors.New("path traversal not allowed")
	// ErrNotFound is returned when a requested track or file does not exist
	ErrNotFound = errors.New("not found")
)

var trackNumberPrefix = regexp.MustCompile(`^(\d+)[\.\-\s]+(.+)`)

// FileService interface defines methods for resolving and inspecting media files
type FileService interface {
	ExtractAudioMetadata(filePath string) *types.AudioMetadata
	ValidateFilePath(path string) error
	Resolve(root, requested string) (string, error)
	GetContentType(filePath string) string
}

// fileService implements the FileService interface
type fileService struct {
	logger *zap.Logger
}

// NewFileService creates a new file service
func NewFileService(logger *zap.Logger) FileService {
	return &fileService{logger: logger}
}

// GetContentType returns the MIME type for a served audio or image file
func (fs *fileService) GetContentType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// ExtractAudioMetadata reads embedded tags, falling back to the file name
// for anything the tags leave empty.
func (fs *fileService) ExtractAudioMetadata(filePath string) *types.AudioMetadata {
	file, err := os.Open(filePath)
	if err != nil {
		fs.logger.Warn("Could not open audio file", zap.String("path", filePath), zap.Error(err))
		return metadataFromName(filePath)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		fs.logger.Debug("No readable tags", zap.String("path", filePath), zap.Error(err))
		return metadataFromName(filePath)
	}

	metadata := &types.AudioMetadata{
		Title:  meta.Title(),
		Artist: meta.Artist(),
		Album:  meta.Album(),
	}
	metadata.TrackNumber, _ = meta.Track()

	if metadata.Title == "" {
		fallback := metadataFromName(filePath)
		metadata.Title = fallback.Title
		if metadata.TrackNumber == 0 {
			metadata.TrackNumber = fallback.TrackNumber
		}
	}

	return metadata
}

// metadataFromName derives a title from "01 - Title.mp3" style names
func metadataFromName(filePath string) *types.AudioMetadata {
	metadata := &types.AudioMetadata{}

	filename := filepath.Base(filePath)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))

	if matches := trackNumberPrefix.FindStringSubmatch(title); len(matches) > 2 {
		title = matches[2]
		if trackNum, err := strconv.Atoi(matches[1]); err == nil {
			metadata.TrackNumber = trackNum
		}
	}

	metadata.Title = title
	return metadata
}

// ValidateFilePath checks for path traversal attempts and other security issues
func (fs *fileService) ValidateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path not allowed")
	}

	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return fmt.Errorf("absolute paths not allowed")
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return ErrPathTraversal
		}
	}

	return nil
}

// Resolve joins a validated request path onto root and makes sure the
// result stays inside it.
func (fs *fileService) Resolve(root, requested string) (string, error) {
	if err := fs.ValidateFilePath(requested); err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	absPath, err := filepath.Abs(filepath.Join(root, requested))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", requested, err)
	}

	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	return absPath, nil
}
