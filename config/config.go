package config

import (
	"os"
	"rutinas/pkg/logger"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GeneralVersion   string `mapstructure:"GENERAL_VERSION"`
	Environment      string `mapstructure:"ENVIRONMENT"`
	ServerPort       int    `mapstructure:"SERVER_PORT"`
	DatabaseDriver   string `mapstructure:"DB_DRIVER"`
	DatabasePath     string `mapstructure:"DB_PATH"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     int    `mapstructure:"DB_PORT"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseSSLMode  string `mapstructure:"DB_SSLMODE"`
	DatabaseRetries  int    `mapstructure:"DB_CONNECT_RETRIES"`
	CorsAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
}

var defaults = map[string]any{
	"GENERAL_VERSION":    "dev",
	"ENVIRONMENT":        "production",
	"SERVER_PORT":        8000,
	"DB_DRIVER":          DriverSQLite,
	"DB_PATH":            "rutinas.db",
	"DB_PORT":            5432,
	"DB_SSLMODE":         "disable",
	"DB_CONNECT_RETRIES": 5,
	"CORS_ALLOW_ORIGINS": "*",
}

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
	"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
	"DB_CONNECT_RETRIES",
	"CORS_ALLOW_ORIGINS",
}

var ConfigInstance Config

// New loads configuration from the environment, falling back to .env and
// .env.local when the environment does not provide it.
func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	v := viper.New()
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for _, env := range envVars {
		if err := v.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	if _, ok := os.LookupEnv("SERVER_PORT"); ok {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		v.SetConfigFile(".env.local")
		if err := v.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"driver", config.DatabaseDriver,
	)

	ConfigInstance = config
	return config, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	switch config.DatabaseDriver {
	case DriverSQLite:
		if config.DatabasePath == "" {
			return log.ErrMsg("Fatal error: DB_PATH required for sqlite driver")
		}
	case DriverPostgres:
		if config.DatabaseHost == "" {
			return log.ErrMsg("Fatal error: DB_HOST required for postgres driver")
		}
		if config.DatabaseName == "" {
			return log.ErrMsg("Fatal error: DB_NAME required for postgres driver")
		}
		if config.DatabaseUser == "" {
			return log.ErrMsg("Fatal error: DB_USER required for postgres driver")
		}
	default:
		return log.Error("Fatal error: unsupported database driver", "driver", config.DatabaseDriver)
	}

	if config.DatabaseRetries < 1 {
		return log.Error("Fatal error: DB_CONNECT_RETRIES must be at least 1", "retries", config.DatabaseRetries)
	}

	return nil
}
