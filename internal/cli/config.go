package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hydrotools/penstock/pkg/network/layout"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds user configuration loaded from config.toml.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Render  RenderConfig  `toml:"render"`
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
}

// LayoutConfig overrides the layered layout geometry.
type LayoutConfig struct {
	MarginX  float64 `toml:"margin_x"`
	HSpacing float64 `toml:"h_spacing"`
	VSpacing float64 `toml:"v_spacing"`
	Height   float64 `toml:"height"`
	MinWidth float64 `toml:"min_width"`
}

// RenderConfig holds diagram rendering options.
type RenderConfig struct {
	ShowLabels bool `toml:"show_labels"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StorageConfig selects the project persistence backend.
// Backend is one of "file", "redis" or "mongo".
type StorageConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	MongoURI  string `toml:"mongo_uri"`
	MongoDB   string `toml:"mongo_db"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			MarginX:  60,
			HSpacing: 180,
			VSpacing: 90,
			Height:   600,
			MinWidth: 400,
		},
		Render: RenderConfig{ShowLabels: true},
		Server: ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{
			Backend: "file",
		},
	}
}

// LoadConfig reads and parses a TOML config file, applying defaults for any
// omitted sections.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// LayoutOptions converts the layout section to layout engine options,
// falling back to defaults for non-positive values.
func (c Config) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	if c.Layout.MarginX > 0 {
		opts.MarginX = c.Layout.MarginX
	}
	if c.Layout.HSpacing > 0 {
		opts.HSpacing = c.Layout.HSpacing
	}
	if c.Layout.VSpacing > 0 {
		opts.VSpacing = c.Layout.VSpacing
	}
	if c.Layout.Height > 0 {
		opts.Height = c.Layout.Height
	}
	if c.Layout.MinWidth > 0 {
		opts.MinWidth = c.Layout.MinWidth
	}
	return opts
}
