package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"abik/internal/domain"
	"abik/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version           int        `toml:"version"`
	WorkDir           string     `toml:"work_dir"`
	DecompressRamdisk bool       `toml:"decompress_ramdisk"`
	Tools             ToolConfig `toml:"tools"`
	UISettings        UISettings `toml:"ui"`
}

// ToolConfig holds the argv templates of the external toolchain.
// Placeholders: {input}, {out}, {name}, {kind}, {decompress}.
type ToolConfig struct {
	Unpack []string `toml:"unpack"`
	Repack []string `toml:"repack"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ConsoleLines int `toml:"console_font_lines"`
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

// DefaultPath is ~/.config/abik/config.toml, or the platform equivalent
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
	return filepath.Join(configDir, "abik", "config.toml")
}

// NewConfigService creates a config service for path. An empty path uses DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		if cs.bus != nil {
			cs.bus.Publish(domain.ErrorEvent{Message: fmt.Sprintf("could not save config: %v", err), Err: err})
		}
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Unset keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &domain.OpError{Op: "config", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &domain.OpError{Op: "config", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	cfg.WorkDir = ExpandHome(cfg.WorkDir)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports settings the application cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.WorkDir) == "" {
		return fmt.Errorf("work_dir must not be empty: %w", domain.ErrInvalidConfig)
	}
	if c.UISettings.ConsoleLines < 0 {
		return fmt.Errorf("ui.console_font_lines must not be negative: %w", domain.ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	// Try to get home directory for default work dir
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Version:           1,
		WorkDir:           filepath.Join(homeDir, "ABIK"),
		DecompressRamdisk: true,
		Tools: ToolConfig{
			Unpack: []string{"abik-unpack", "--input", "{input}", "--out", "{out}", "--kind", "{kind}", "--decompress-ramdisk={decompress}"},
			Repack: []string{"abik-repack", "--project", "{input}", "--out", "{out}", "--kind", "{kind}"},
		},
		UISettings: UISettings{
			ConsoleLines: 0,
		},
	}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
