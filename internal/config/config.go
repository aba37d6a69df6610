package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Store   StoreConfig   `mapstructure:"store"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Boost   BoostConfig   `mapstructure:"boost"`
}

type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	WithCredentials bool          `mapstructure:"with_credentials"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

type BoostConfig struct {
	Packages []PackageConfig `mapstructure:"packages"`
}

// PackageConfig keeps the price as text so it can be parsed into a decimal
// without float rounding.
type PackageConfig struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Days  int    `mapstructure:"days"`
	Price string `mapstructure:"price"`
}

const envPrefix = "MARKETCTL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.with_credentials", true)
	v.SetDefault("api.timeout", "0s")

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", defaultStorePath())
	v.SetDefault("store.addr", "localhost:6379")
	v.SetDefault("store.password", "")
	v.SetDefault("store.db", 0)
	v.SetDefault("store.key_prefix", "marketctl:")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.service_name", "marketctl")
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.version", "dev")

	v.SetDefault("metrics.addr", "")
	v.SetDefault("logger.level", "info")
}

// defaultStorePath is $HOME/.marketctl/store.db, or a directory relative to
// the working directory when there is no home.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".marketctl", "store.db")
	}
	return filepath.Join(home, ".marketctl", "store.db")
}

// LoadConfig reads config.yaml from the working directory or
// $HOME/.marketctl, then applies MARKETCTL_* environment overrides.
// A missing config file is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.marketctl")

	return load(v)
}

// LoadConfigFile reads an explicit file instead of searching.
func LoadConfigFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if timeoutStr := v.GetString("api.timeout"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, err
		}
		config.API.Timeout = timeout
	}

	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")

	return &config, nil
}

// MustLoadConfig loads the file named by MARKETCTL_CONFIG when it is set and
// searches the default locations otherwise.
func MustLoadConfig() *Config {
	read := LoadConfig
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		read = func() (*Config, error) { return LoadConfigFile(path) }
	}

	config, err := read()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	return config
}
