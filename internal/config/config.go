package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // sqlite / postgres
	Path    string `mapstructure:"path"`   // sqlite file path
	DSN     string `mapstructure:"dsn"`    // postgres connection string
	LogMode bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	Backend    string `mapstructure:"backend"` // db / file / memory
	File       string `mapstructure:"file"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

type UploadConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
	MaxFiles    int    `mapstructure:"max_files"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Security SecurityConfig `mapstructure:"security"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

var (
	appConfig *Config
	loadErr   error
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
// The result, including a failure, is fixed by the first call.
func Load(path string) (*Config, error) {
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("server.address", "0.0.0.0")
		v.SetDefault("server.port", 15009)
		v.SetDefault("database.driver", "sqlite")
		v.SetDefault("database.path", "data/board.db")
		v.SetDefault("session.backend", "db")
		v.SetDefault("session.file", "data/sessions.json")
		v.SetDefault("session.ttl_minutes", 30)
		v.SetDefault("upload.dir", "uploads")
		v.SetDefault("upload.max_file_size", 10*1024*1024)
		v.SetDefault("upload.max_files", 10)
		v.SetDefault("security.bcrypt_cost", 12)

		// environment overrides, e.g. BOARD_SERVER_PORT=9000
		v.SetEnvPrefix("BOARD")
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			loadErr = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err := v.Unmarshal(&c); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
