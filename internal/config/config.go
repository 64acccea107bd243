// Package config resolves the configuration directory, config file and storage settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML config filename.
	ConfigFile = "config.toml"

	// EnvFile is the optional dotenv filename.
	EnvFile = ".env"

	// DataFile is the default JSON data filename (file backend).
	DataFile = "tasks.json"

	// DBFile is the default SQLite database filename (sqlite backend).
	DBFile = "tasks.db"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultRemoteList is the Google Tasks list used by the gtasks backend.
	DefaultRemoteList = "todo-storage"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendGTasks = "gtasks"
)

// ErrUnknownBackend is returned when the backend name is not recognised.
var ErrUnknownBackend = errors.New("unknown backend")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Backend selects the storage backend: file, sqlite or gtasks.
	Backend string `toml:"backend"`

	// DataFile overrides the file backend path.
	DataFile string `toml:"data_file"`

	// DBFile overrides the sqlite backend path.
	DBFile string `toml:"db_file"`

	// RemoteList is the Google Tasks list title used by the gtasks backend.
	RemoteList string `toml:"remote_list"`

	// MaxBytes caps the file backend size; zero means unlimited.
	MaxBytes int `toml:"max_bytes"`

	// Color enables styled output.
	Color bool `toml:"color"`

	// Logger receives diagnostics. Never nil after Load.
	Logger *slog.Logger `toml:"-"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		Backend:    BackendFile,
		RemoteList: DefaultRemoteList,
		Logger:     slog.New(slog.DiscardHandler),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Load applies, in order, the config file, dotenv files and TODO_* environment
// variables on top of the defaults. Real environment variables always win over
// dotenv values.
func (c *Config) Load() error {
	if err := c.loadFile(); err != nil {
		return err
	}
	if err := c.loadDotEnv(); err != nil {
		return err
	}
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendGTasks:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, c.Backend)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("invalid max_bytes: %d", c.MaxBytes)
	}
	if strings.TrimSpace(c.RemoteList) == "" {
		c.RemoteList = DefaultRemoteList
	}
	return nil
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	c.Logger.Debug("loaded config file", "path", path)
	return nil
}

func (c *Config) loadDotEnv() error {
	for _, p := range []string{EnvFile, filepath.Join(c.Dir, EnvFile)} {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		c.Logger.Debug("loaded env file", "path", p)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("TODO_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("TODO_DATA_FILE"); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv("TODO_DB_FILE"); v != "" {
		c.DBFile = v
	}
	if v := os.Getenv("TODO_REMOTE_LIST"); v != "" {
		c.RemoteList = v
	}
	if v := os.Getenv("TODO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TODO_COLOR: %s", v)
		}
		c.Color = b
	}
	return nil
}

// ConfigPath returns the path to the TOML config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the file backend path.
func (c *Config) DataPath() string {
	if c.DataFile != "" {
		return c.DataFile
	}
	return filepath.Join(c.Dir, DataFile)
}

// DBPath returns the sqlite backend path.
func (c *Config) DBPath() string {
	if c.DBFile != "" {
		return c.DBFile
	}
	return filepath.Join(c.Dir, DBFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
