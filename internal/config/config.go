package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultBodyText is the initial pending body text
	DefaultBodyText = "{}"
	// DefaultHeadersText is the initial pending headers text
	DefaultHeadersText = "{}"
)

var (
	// ConfigDir is the global configuration directory (~/.restcommander)
	ConfigDir string

	// DatabasePath is the SQLite database file holding saved requests
	DatabasePath string

	// LogFile is where the TUI writes its log
	LogFile string

	// ConfigFile is the optional YAML configuration file
	ConfigFile string
)

// Config holds the user-tunable settings read from config.yaml
type Config struct {
	DatabasePath   string        `mapstructure:"database_path"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DefaultBody    string        `mapstructure:"default_body"`
	DefaultHeaders string        `mapstructure:"default_headers"`
}

// Initialize sets up the configuration directory and global paths
// It creates ~/.restcommander/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".restcommander"))
}

// InitializeAt is Initialize with an explicit configuration directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "restcommander.db")
	LogFile = filepath.Join(ConfigDir, "restcommander.log")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Load reads the YAML config at path on top of the defaults.
// A missing file is not an error; an empty path uses ConfigFile.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigFile
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("database_path", DatabasePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", LogFile)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("default_body", DefaultBodyText)
	v.SetDefault("default_headers", DefaultHeadersText)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.DatabasePath = expandHome(cfg.DatabasePath)
	cfg.LogFile = expandHome(cfg.LogFile)
	if cfg.RequestTimeout < 0 {
		return nil, errors.New("request_timeout must not be negative")
	}

	return &cfg, nil
}

// expandHome expands a leading ~/ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
