package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"musicbox/config"
	"musicbox/handlers"
	"musicbox/middleware"
	"musicbox/services"
	"musicbox/types"
	"musicbox/web"
	"musicbox/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceName is reported by the health endpoint
const ServiceName = "musicbox"

// App wires the services, handlers and router together
type App struct {
	Router *gin.Engine
	Hub    websocket.Hub
	Lister services.Lister
}

// NewApp builds the application from configuration. The hub is not
// started; call Hub.Run.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	fileService := services.NewFileService(logger)
	lister := services.NewLister(services.NewListerConfig(cfg.Library), fileService, logger)

	hub := websocket.NewHub(func(ctx context.Context) types.LibraryMessage {
		return websocket.NewSnapshotMessage(lister.List(ctx))
	}, logger)

	songRoot := handlers.MediaRoot{
		Dir:        cfg.Library.AudioDir,
		Extensions: slices.Clone(cfg.Library.Extensions),
	}
	thumbRoot := handlers.MediaRoot{
		Dir:        cfg.Library.ThumbnailRoot(),
		Extensions: []string{services.ThumbnailExt},
	}
	if cfg.Library.ColocatedThumbnails {
		songRoot.Extensions = append(songRoot.Extensions, services.ThumbnailExt)
	}

	songsHandler := handlers.NewSongsHandler(lister, cfg.Library.DefaultThumbnailURL(), logger)
	searchHandler := handlers.NewSearchHandler(lister, logger)
	fileHandler := handlers.NewFileHandler(fileService, songRoot, thumbRoot, logger)
	healthHandler := handlers.NewHealthHandler(ServiceName, lister, hub)
	settingsHandler := handlers.NewSettingsHandler(cfg)
	wsHandler := handlers.NewLibraryWSHandler(hub, logger)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.Security())

	setupRoutes(r, cfg, songsHandler, searchHandler, fileHandler, healthHandler, settingsHandler, wsHandler)

	return &App{
		Router: r,
		Hub:    hub,
		Lister: lister,
	}, nil
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, cfg *config.Config, songsHandler *handlers.SongsHandler, searchHandler *handlers.SearchHandler, fileHandler *handlers.FileHandler, healthHandler *handlers.HealthHandler, settingsHandler *handlers.SettingsHandler, wsHandler *handlers.LibraryWSHandler) {
	r.GET("/", songsHandler.Index)
	r.GET("/songs", songsHandler.List)
	r.GET("/health", healthHandler.HealthCheck)

	// Only the fallback image is public; audio and thumbnails go through /media.
	r.StaticFile(cfg.Library.DefaultThumbnailRoute(), cfg.Library.DefaultThumbnailFile())

	mediaGroup := r.Group("/media")
	{
		mediaGroup.GET("/songs/*filepath", fileHandler.StreamSong)
		mediaGroup.HEAD("/songs/*filepath", fileHandler.StreamSong)
		if !cfg.Library.ColocatedThumbnails {
			mediaGroup.GET("/thumbnails/*filepath", fileHandler.StreamThumbnail)
			mediaGroup.HEAD("/thumbnails/*filepath", fileHandler.StreamThumbnail)
		}
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)
		apiGroup.GET("/settings", settingsHandler.GetSettings)

		apiGroup.GET("/songs/search", searchHandler.Search)
		apiGroup.GET("/songs/:filename", songsHandler.Get)

		apiGroup.GET("/ws/library", wsHandler.HandleConnection)
	}
}

// StartWebServer serves until ctx is cancelled, then shuts down gracefully
func StartWebServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}

	go app.Hub.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Music player web server starting",
			zap.String("addr", srv.Addr),
			zap.String("audio_dir", cfg.Library.AudioDir),
			zap.String("thumbnail_dir", cfg.Library.ThumbnailRoot()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
