package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/newthinker/corpus/internal/codec"
	"github.com/newthinker/corpus/internal/core"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: store.root -> CORPUS_STORE_ROOT.
const EnvPrefix = "CORPUS"

type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type StoreConfig struct {
	Backend string   `mapstructure:"backend"` // "localfs" or "s3"
	Root    string   `mapstructure:"root"`    // For localfs
	Codec   string   `mapstructure:"codec"`   // "msgpack" or "gob"
	Strict  bool     `mapstructure:"strict"`  // refuse to overwrite existing corpora
	S3      S3Config `mapstructure:"s3"`      // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Textfile is written in Prometheus text format after each command
	// when set.
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration from file. An empty path yields the defaults
// with environment overrides applied.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.root", d.Store.Root)
	v.SetDefault("store.codec", d.Store.Codec)
	v.SetDefault("store.strict", d.Store.Strict)
	v.SetDefault("store.s3.bucket", d.Store.S3.Bucket)
	v.SetDefault("store.s3.endpoint", d.Store.S3.Endpoint)
	v.SetDefault("store.s3.region", d.Store.S3.Region)
	v.SetDefault("store.s3.access_key", d.Store.S3.AccessKey)
	v.SetDefault("store.s3.secret_key", d.Store.S3.SecretKey)
	v.SetDefault("store.s3.prefix", d.Store.S3.Prefix)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "localfs",
			Root:    "corpora",
			Codec:   "msgpack",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "localfs":
		if c.Store.Root == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("store root required when backend is localfs"))
		}
	case "s3":
		if c.Store.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when backend is s3"))
		}
		if c.Store.S3.Region == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 region required when backend is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("store backend must be localfs or s3, got %q", c.Store.Backend))
	}

	if _, err := codec.ByName(c.Store.Codec); err != nil {
		return err
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("log level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	return nil
}
