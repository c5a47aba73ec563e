package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"musicbox/config"
	"musicbox/services"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ListTracks prints the library as JSON to out. Tags are probed one file at
// a time with a progress bar on progress.
func ListTracks(ctx context.Context, cfg *config.Config, logger *zap.Logger, out, progress io.Writer) error {
	fileService := services.NewFileService(logger)

	listerCfg := services.NewListerConfig(cfg.Library)
	listerCfg.ReadTags = false
	lister := services.NewLister(listerCfg, fileService, logger)

	tracks, err := lister.List(ctx)
	if err != nil {
		return err
	}

	if cfg.Library.ReadTags && len(tracks) > 0 {
		bar := progressbar.NewOptions(len(tracks),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("Reading tags"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		for i := range tracks {
			if err := ctx.Err(); err != nil {
				return err
			}
			tracks[i].Metadata = fileService.ExtractAudioMetadata(filepath.Join(cfg.Library.AudioDir, tracks[i].Filename))
			_ = bar.Add(1)
		}
		_ = bar.Finish()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tracks); err != nil {
		return fmt.Errorf("failed to write listing: %w", err)
	}
	return nil
}
