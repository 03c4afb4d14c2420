// Package config resolves runtime settings from defaults, an optional
// YAML file, TASKFLOW_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "TASKFLOW"
	configFileName = "taskflow"
	configFileType = "yaml"

	KeyDataDir         = "data_dir"
	KeyBackend         = "storage.backend"
	KeyRedisAddr       = "storage.redis_addr"
	KeyRedisPassword   = "storage.redis_password"
	KeyRedisDB         = "storage.redis_db"
	KeyRedisNamespace  = "storage.redis_namespace"
	KeyIDScheme        = "ids.scheme"
	KeyTimezone        = "timezone"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
	KeyDesktopNotify   = "notifications.desktop"
	KeyHTMLMirror      = "html.mirror"
	KeyWatcherBuffer   = "watcher.buffer"
	defaultBackend     = "sqlite"
	defaultIDScheme    = "timestamp"
	defaultLogLevel    = "info"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisNS     = "default"
	defaultWatcherSize = 64
)

var ErrInvalidConfig = errors.New("config: invalid value")

type RuntimeConfig struct {
	DataDir              string
	Backend              string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	RedisNamespace       string
	IDScheme             string
	Timezone             string
	LogLevel             string
	LogFile              string
	DesktopNotifications bool
	HTMLMirror           string
	WatcherBuffer        int
	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}

// LoadOptions locates the config file. Flags holds explicitly set CLI
// flag values keyed by config key; they win over everything else.
type LoadOptions struct {
	ConfigFile string
	DataDir    string
	Flags      map[string]any
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataDir:        DefaultDataDir(),
		Backend:        defaultBackend,
		RedisAddr:      defaultRedisAddr,
		RedisNamespace: defaultRedisNS,
		IDScheme:       defaultIDScheme,
		LogLevel:       defaultLogLevel,
		WatcherBuffer:  defaultWatcherSize,
	}
}

// DefaultDataDir is $XDG_DATA_HOME/taskflow, else ~/.local/share/taskflow.
func DefaultDataDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "taskflow")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", ".taskflow")
	}
	return filepath.Join(home, ".local", "share", "taskflow")
}

func newViper() *viper.Viper {
	def := DefaultRuntimeConfig()
	v := viper.New()
	v.SetDefault(KeyDataDir, def.DataDir)
	v.SetDefault(KeyBackend, def.Backend)
	v.SetDefault(KeyRedisAddr, def.RedisAddr)
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisNamespace, def.RedisNamespace)
	v.SetDefault(KeyIDScheme, def.IDScheme)
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDesktopNotify, false)
	v.SetDefault(KeyHTMLMirror, "")
	v.SetDefault(KeyWatcherBuffer, def.WatcherBuffer)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the runtime configuration. A missing config file is not
// an error unless it was named explicitly.
func Load(opts LoadOptions) (RuntimeConfig, error) {
	v := newViper()
	for key, val := range opts.Flags {
		v.Set(key, val)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return RuntimeConfig{}, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		dir := opts.DataDir
		if dir == "" {
			dir = v.GetString(KeyDataDir)
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return RuntimeConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := RuntimeConfig{
		DataDir:              v.GetString(KeyDataDir),
		Backend:              strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		RedisAddr:            v.GetString(KeyRedisAddr),
		RedisPassword:        v.GetString(KeyRedisPassword),
		RedisDB:              v.GetInt(KeyRedisDB),
		RedisNamespace:       v.GetString(KeyRedisNamespace),
		IDScheme:             strings.ToLower(strings.TrimSpace(v.GetString(KeyIDScheme))),
		Timezone:             strings.TrimSpace(v.GetString(KeyTimezone)),
		LogLevel:             strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:              v.GetString(KeyLogFile),
		DesktopNotifications: v.GetBool(KeyDesktopNotify),
		HTMLMirror:           v.GetString(KeyHTMLMirror),
		WatcherBuffer:        v.GetInt(KeyWatcherBuffer),
		ConfigFile:           v.ConfigFileUsed(),
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case "sqlite", "redis", "file", "memory":
	default:
		return fmt.Errorf("%w: storage.backend %q", ErrInvalidConfig, c.Backend)
	}
	switch c.IDScheme {
	case "timestamp", "uuid":
	default:
		return fmt.Errorf("%w: ids.scheme %q", ErrInvalidConfig, c.IDScheme)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.WatcherBuffer <= 0 {
		return fmt.Errorf("%w: watcher.buffer must be positive", ErrInvalidConfig)
	}
	return nil
}

// Location returns the configured time zone, time.Local when unset.
func (c RuntimeConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}
