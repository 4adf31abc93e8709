package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/dshills/civiclink/internal/matcher"
)

const (
	// EnvPrefix is prepended to every environment override (CIVICLINK_DB_PATH, ...)
	EnvPrefix = "CIVICLINK"
	// FileName is the config file base name searched for without extension
	FileName = "civiclink"

	// DefaultDBPath is the default location of the SQLite store
	DefaultDBPath   = "~/.civiclink/civiclink.db"
	DefaultCacheTTL = 5 * time.Minute
	DefaultCacheLen = 100
)

// Config is the runtime configuration shared by the CLI and MCP server
type Config struct {
	DBPath     string      `mapstructure:"db_path" validate:"required"`
	Thresholds Thresholds  `mapstructure:"thresholds"`
	Workers    int         `mapstructure:"workers" validate:"min=0,max=1024"`
	Cache      CacheConfig `mapstructure:"cache"`
	Log        LogConfig   `mapstructure:"log"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// Thresholds are the minimum scores for each matcher kind
type Thresholds struct {
	Company float64 `mapstructure:"company" validate:"min=0,max=1"`
	Person  float64 `mapstructure:"person" validate:"min=0,max=1"`
	Address float64 `mapstructure:"address" validate:"min=0,max=1"`
}

// CacheConfig sizes the resolver report cache
type CacheConfig struct {
	Size int           `mapstructure:"size" validate:"min=0"`
	TTL  time.Duration `mapstructure:"ttl" validate:"min=0"`
}

// LogConfig selects log level and encoding
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Loader wraps a viper instance primed with defaults, env binding and the
// config search path. Callers may bind CLI flags to Viper() before Load.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with defaults registered
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("thresholds.company", matcher.DefaultCompanyThreshold)
	v.SetDefault("thresholds.person", matcher.DefaultPersonThreshold)
	v.SetDefault("thresholds.address", matcher.DefaultAddressThreshold)
	v.SetDefault("workers", 0)
	v.SetDefault("cache.size", DefaultCacheLen)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Viper exposes the underlying instance for flag binding
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads configFile, or searches ".", "~/.config/civiclink" and
// "~/.civiclink" for civiclink.yaml when configFile is empty. A missing
// file in the search path is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(FileName)
		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", FileName))
			l.v.AddConfigPath(filepath.Join(home, "."+FileName))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = l.v.ConfigFileUsed()
	cfg.DBPath = ExpandHome(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration with a fresh Loader
func Load(configFile string) (*Config, error) {
	return NewLoader().Load(configFile)
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DBPath: ExpandHome(DefaultDBPath),
		Thresholds: Thresholds{
			Company: matcher.DefaultCompanyThreshold,
			Person:  matcher.DefaultPersonThreshold,
			Address: matcher.DefaultAddressThreshold,
		},
		Cache: CacheConfig{Size: DefaultCacheLen, TTL: DefaultCacheTTL},
		Log:   LogConfig{Level: "info", Format: "console"},
	}
}

// Validate checks field ranges
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
