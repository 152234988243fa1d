package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"stayfinder/internal/domain"
	"stayfinder/internal/eventbus"
)

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Currency     string        `toml:"currency"`
	PageSize     int           `toml:"page_size"`
	ListingsFile string        `toml:"listings_file"`
	Map          MapSettings   `toml:"map"`
	Features     FeatureFlags  `toml:"features"`
	Badges       BadgeSettings `toml:"badges"`
	UI           UISettings    `toml:"ui"`
}

// MapSettings configures the initial map view and tile source
type MapSettings struct {
	Center      []float64 `toml:"center"` // [lat, lng]
	Zoom        float64   `toml:"zoom"`
	MaxZoom     int       `toml:"max_zoom"`
	TileURL     string    `toml:"tile_url"`
	Attribution string    `toml:"attribution"`
}

// FeatureFlags toggles optional controls
type FeatureFlags struct {
	MapToggle  bool `toml:"map_toggle"`
	Sort       bool `toml:"sort"`
	Pagination bool `toml:"pagination"`
}

// BadgeSettings controls badge classification
type BadgeSettings struct {
	LegacyFallback bool `toml:"legacy_fallback"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Columns int `toml:"columns"`
}

// CenterLatLng returns the configured map center, falling back to the default
// when the array is malformed.
func (m MapSettings) CenterLatLng() domain.LatLng {
	if len(m.Center) != 2 {
		d := DefaultConfig().Map.Center
		return domain.LatLng{Lat: d[0], Lng: d[1]}
	}
	return domain.LatLng{Lat: m.Center[0], Lng: m.Center[1]}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config location under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "stayfinder", "config.toml")
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service reading and writing path.
// An empty path selects the default location.
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	return NewConfigServiceAt("", bus)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects values the widget cannot work with
func (c *Config) Validate() error {
	if c.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative, got %d", c.PageSize)
	}
	if c.UI.Columns < 0 {
		return fmt.Errorf("ui.columns must not be negative, got %d", c.UI.Columns)
	}
	if n := len(c.Map.Center); n != 0 && n != 2 {
		return fmt.Errorf("map.center must be [lat, lng], got %d values", n)
	}
	if c.Map.MaxZoom < 0 {
		return fmt.Errorf("map.max_zoom must not be negative, got %d", c.Map.MaxZoom)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Currency: "$",
		PageSize: 12,
		Map: MapSettings{
			Center:      []float64{38.7223, -9.1393},
			Zoom:        12,
			MaxZoom:     19,
			TileURL:     "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "© OpenStreetMap contributors",
		},
		Features: FeatureFlags{
			MapToggle:  true,
			Sort:       true,
			Pagination: true,
		},
		UI: UISettings{
			Columns: 2,
		},
	}
}
