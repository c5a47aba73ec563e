package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs; it is passed explicitly to the
// services and handlers instead of being read from globals.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Library LibraryConfig `yaml:"library" json:"library"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Host        string   `yaml:"host" json:"host"`
	Port        int      `yaml:"port" json:"port"`
	Mode        string   `yaml:"mode" json:"mode"`
	CORSOrigins []string `yaml:"cors_origins" json:"corsOrigins"`
}

// LibraryConfig describes where tracks and thumbnails live on disk
type LibraryConfig struct {
	AudioDir            string   `yaml:"audio_dir" json:"audioDir"`
	ThumbnailDir        string   `yaml:"thumbnail_dir" json:"thumbnailDir"`
	ColocatedThumbnails bool     `yaml:"colocated_thumbnails" json:"colocatedThumbnails"`
	StaticDir           string   `yaml:"static_dir" json:"staticDir"`
	DefaultThumbnail    string   `yaml:"default_thumbnail" json:"defaultThumbnail"`
	Extensions          []string `yaml:"extensions" json:"extensions"`
	ReadTags            bool     `yaml:"read_tags" json:"readTags"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	Output     string `yaml:"output" json:"output"` // "stdout" or "stderr"
	File       string `yaml:"file" json:"file"`
	MaxSize    int    `yaml:"max_size" json:"maxSize"`
	MaxBackups int    `yaml:"max_backups" json:"maxBackups"`
	MaxAge     int    `yaml:"max_age" json:"maxAge"`
}

// Default returns the configuration used when nothing is overridden.
// The directory layout mirrors a static/ folder with songs/ and thumbnails/.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        5000,
			Mode:        "release",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Library: LibraryConfig{
			AudioDir:         filepath.Join("static", "songs"),
			ThumbnailDir:     filepath.Join("static", "thumbnails"),
			StaticDir:        "static",
			DefaultThumbnail: "default.jpg",
			Extensions:       []string{".mp3", ".wav", ".ogg"},
			ReadTags:         true,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// a .env file in the working directory and finally the process environment.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			return nil, err
		}
	}

	_ = godotenv.Load()

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.Library.AudioDir, "AUDIO_DIR")
	setString(&c.Library.ThumbnailDir, "THUMBNAIL_DIR")
	setString(&c.Library.StaticDir, "STATIC_DIR")
	setString(&c.Library.DefaultThumbnail, "DEFAULT_THUMBNAIL")
	setString(&c.Server.Host, "HOST")
	setString(&c.Server.Mode, "GIN_MODE")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.Output, "LOG_OUTPUT")
	setString(&c.Log.File, "LOG_FILE")

	if exts := os.Getenv("AUDIO_EXTENSIONS"); exts != "" {
		c.Library.Extensions = splitList(exts)
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = splitList(origins)
	}

	if err := setBool(&c.Library.ColocatedThumbnails, "COLOCATED_THUMBNAILS"); err != nil {
		return err
	}
	if err := setBool(&c.Library.ReadTags, "READ_TAGS"); err != nil {
		return err
	}

	// SERVER_PORT wins over PORT, which hosting platforms usually inject.
	for _, key := range []string{"PORT", "SERVER_PORT"} {
		if err := setInt(&c.Server.Port, key); err != nil {
			return err
		}
	}
	return nil
}

// Validate normalises extensions and rejects unusable values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Library.AudioDir) == "" {
		return fmt.Errorf("audio directory is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Library.Extensions) == 0 {
		return fmt.Errorf("at least one audio extension is required")
	}

	for i, ext := range c.Library.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext == "." {
			return fmt.Errorf("invalid audio extension %q", c.Library.Extensions[i])
		}
		c.Library.Extensions[i] = ext
	}

	if !c.Library.ColocatedThumbnails && c.Library.ThumbnailDir == "" {
		c.Library.ColocatedThumbnails = true
	}
	if c.Library.StaticDir == "" {
		c.Library.StaticDir = "static"
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported gin mode: %s", c.Server.Mode)
	}

	return nil
}

// Addr is the host:port the server binds to
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ThumbnailRoot returns the directory thumbnails are looked up in
func (l LibraryConfig) ThumbnailRoot() string {
	if l.ColocatedThumbnails {
		return l.AudioDir
	}
	return l.ThumbnailDir
}

// DefaultThumbnailURL is the request path of the fallback image under /static
func (l LibraryConfig) DefaultThumbnailURL() string {
	parts := strings.Split(filepath.ToSlash(l.DefaultThumbnail), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/static/" + strings.TrimPrefix(strings.Join(parts, "/"), "/")
}

// DefaultThumbnailRoute is the unescaped route the fallback image is mounted on
func (l LibraryConfig) DefaultThumbnailRoute() string {
	return "/static/" + strings.TrimPrefix(filepath.ToSlash(l.DefaultThumbnail), "/")
}

// DefaultThumbnailFile is the on-disk location of the fallback image
func (l LibraryConfig) DefaultThumbnailFile() string {
	return filepath.Join(l.StaticDir, l.DefaultThumbnail)
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setInt(target *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func setBool(target *bool, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
