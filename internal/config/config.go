package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

const EnvPrefix = "NOTEBOOK"

const (
	DriverMemory  = "memory"
	DriverSQLite  = "sqlite"
	DriverDir     = "dir"
	DriverGraphQL = "graphql"
)

type Config struct {
	ListenAddr string      `mapstructure:"listen_addr"`
	StaticDir  string      `mapstructure:"static_dir"`
	Log        LogConfig   `mapstructure:"log"`
	Cache      CacheConfig `mapstructure:"cache"`
	Store      StoreConfig `mapstructure:"store"`
}

type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// CacheConfig holds Cache-Control values. Empty values fall back to the
// server defaults.
type CacheConfig struct {
	HTML   string `mapstructure:"html"`
	Static string `mapstructure:"static"`
	Error  string `mapstructure:"error"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	// DSN is the SQLite database path or URI.
	DSN string `mapstructure:"dsn"`
	// Dir, Pattern and Watch configure the markdown directory store.
	Dir     string `mapstructure:"dir"`
	Pattern string `mapstructure:"pattern"`
	Watch   bool   `mapstructure:"watch"`
	// Seed is a YAML file loaded into the memory store at startup.
	Seed    string        `mapstructure:"seed"`
	GraphQL GraphQLConfig `mapstructure:"graphql"`
}

type GraphQLConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		StaticDir:  "internal/web/static",
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Driver:  DriverMemory,
			Pattern: "**/*.md",
			GraphQL: GraphQLConfig{
				Timeout: 15 * time.Second,
			},
		},
	}
}

// SetDefaults registers every key so that env overrides are picked up by
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("static_dir", defaults.StaticDir)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.development", defaults.Log.Development)

	v.SetDefault("cache.html", defaults.Cache.HTML)
	v.SetDefault("cache.static", defaults.Cache.Static)
	v.SetDefault("cache.error", defaults.Cache.Error)

	v.SetDefault("store.driver", defaults.Store.Driver)
	v.SetDefault("store.dsn", defaults.Store.DSN)
	v.SetDefault("store.dir", defaults.Store.Dir)
	v.SetDefault("store.pattern", defaults.Store.Pattern)
	v.SetDefault("store.watch", defaults.Store.Watch)
	v.SetDefault("store.seed", defaults.Store.Seed)
	v.SetDefault("store.graphql.endpoint", defaults.Store.GraphQL.Endpoint)
	v.SetDefault("store.graphql.token", defaults.Store.GraphQL.Token)
	v.SetDefault("store.graphql.timeout", defaults.Store.GraphQL.Timeout)
}

// Load reads configuration from defaults, an optional config file and
// NOTEBOOK_* environment variables, in increasing priority. Flags bound on v
// take precedence over all of them.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile = strings.TrimSpace(configFile); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("%w: listen_addr is required", ErrInvalid)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("%w: store.dsn is required for the sqlite driver", ErrInvalid)
		}
	case DriverDir:
		if strings.TrimSpace(c.Store.Dir) == "" {
			return fmt.Errorf("%w: store.dir is required for the dir driver", ErrInvalid)
		}
	case DriverGraphQL:
		if strings.TrimSpace(c.Store.GraphQL.Endpoint) == "" {
			return fmt.Errorf("%w: store.graphql.endpoint is required for the graphql driver", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store.driver %q", ErrInvalid, c.Store.Driver)
	}

	return nil
}
