package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"remotetv/internal/eventbus"
)

const fileName = "config.toml"

// Config represents the application configuration
type Config struct {
	Version  int            `toml:"version"`
	TMDB     TMDBSettings   `toml:"tmdb"`
	Supabase SupabaseConfig `toml:"supabase"`
	UI       UISettings     `toml:"ui"`
	Player   PlayerSettings `toml:"player"`
	Log      LogSettings    `toml:"log"`
}

// TMDBSettings configures the catalog client
type TMDBSettings struct {
	BaseURL      string        `toml:"base_url"`
	ImageBaseURL string        `toml:"image_base_url"`
	ReadToken    string        `toml:"read_token"`
	Language     string        `toml:"language"`
	CacheTTL     time.Duration `toml:"cache_ttl"`
	CacheSize    int           `toml:"cache_size"`
	RequestsPerS float64       `toml:"requests_per_second"`
}

// SupabaseConfig configures the personal library store
type SupabaseConfig struct {
	URL         string        `toml:"url"`
	AnonKey     string        `toml:"anon_key"`
	AccessToken string        `toml:"access_token"`
	AuthTTL     time.Duration `toml:"auth_ttl"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CardWidth     int           `toml:"card_width"`
	CardHeight    int           `toml:"card_height"`
	Columns       int           `toml:"columns"` // 0 derives the count from the terminal width
	HoverDelay    time.Duration `toml:"hover_delay"`
	DPadDebounce  time.Duration `toml:"dpad_debounce"`
	LoadAhead     int           `toml:"load_ahead"`
	Images        bool          `toml:"images"`
	SkeletonCount int           `toml:"skeleton_count"`
	// ActionModal makes Enter on a card open the three-action modal
	// instead of the in-card button row
	ActionModal bool `toml:"action_modal"`
}

// PlayerSettings names the external command used for playback
type PlayerSettings struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// LogSettings configures the rotating log file
type LogSettings struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
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
	fs       afero.Fs
	bus      eventbus.EventBus
	filePath string
	getenv   func(string) string
}

// Option customises a config service
type Option func(*configService)

// WithBus publishes load/save events on the given bus
func WithBus(bus eventbus.EventBus) Option {
	return func(cs *configService) { cs.bus = bus }
}

// WithPath overrides the config file location
func WithPath(path string) Option {
	return func(cs *configService) { cs.filePath = path }
}

// WithEnv replaces os.Getenv, mainly for tests
func WithEnv(getenv func(string) string) Option {
	return func(cs *configService) { cs.getenv = getenv }
}

// NewConfigService creates a config service on the given filesystem
func NewConfigService(fs afero.Fs, opts ...Option) ConfigService {
	cs := &configService{
		fs:       fs,
		filePath: DefaultPath(),
		getenv:   os.Getenv,
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// DefaultPath returns $XDG_CONFIG_HOME/remotetv/config.toml or its fallbacks
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "remotetv", fileName)
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration, writing defaults when the file is missing.
// Environment overrides are applied after the file.
func (cs *configService) Load() (*Config, error) {
	exists, err := afero.Exists(cs.fs, cs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	var cfg *Config
	if !exists {
		cfg = DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			return nil, err
		}
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	cs.applyEnv(cfg)

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := afero.ReadFile(cs.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := cs.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// tokens live in this file
	if err := afero.WriteFile(cs.fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) applyEnv(cfg *Config) {
	if v := cs.getenv("TMDB_READ_TOKEN"); v != "" {
		cfg.TMDB.ReadToken = v
	}
	if v := cs.getenv("REMOTETV_TMDB_BASE_URL"); v != "" {
		cfg.TMDB.BaseURL = v
	}
	if v := cs.getenv("SUPABASE_URL"); v != "" {
		cfg.Supabase.URL = v
	}
	if v := cs.getenv("SUPABASE_ANON_KEY"); v != "" {
		cfg.Supabase.AnonKey = v
	}
	if v := cs.getenv("SUPABASE_ACCESS_TOKEN"); v != "" {
		cfg.Supabase.AccessToken = v
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		TMDB: TMDBSettings{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
			CacheTTL:     30 * time.Minute,
			CacheSize:    500,
			RequestsPerS: 20,
		},
		Supabase: SupabaseConfig{
			AuthTTL: 5 * time.Minute,
		},
		UI: UISettings{
			CardWidth:     24,
			CardHeight:    14,
			HoverDelay:    400 * time.Millisecond,
			DPadDebounce:  120 * time.Millisecond,
			LoadAhead:     60,
			Images:        true,
			SkeletonCount: 20,
		},
		Log: LogSettings{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
