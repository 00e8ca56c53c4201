package config

import (
	"testing"

	"rutinas/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "rutinas")
	t.Setenv("DB_USER", "rutinas")
	t.Setenv("GENERAL_VERSION", "1.2.3")

	config, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, config.ServerPort)
	assert.Equal(t, DriverPostgres, config.DatabaseDriver)
	assert.Equal(t, "db.internal", config.DatabaseHost)
	assert.Equal(t, "1.2.3", config.GeneralVersion)
	assert.Equal(t, 5432, config.DatabasePort)
	assert.Equal(t, "disable", config.DatabaseSSLMode)
	assert.Equal(t, "*", config.CorsAllowOrigins)
	assert.Equal(t, config, GetConfig())
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "8000")

	config, err := New()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, config.DatabaseDriver)
	assert.Equal(t, "rutinas.db", config.DatabasePath)
	assert.Equal(t, 5, config.DatabaseRetries)
}

func TestValidateConfig(t *testing.T) {
	log := logger.New("config_test")

	valid := Config{
		ServerPort:      8000,
		DatabaseDriver:  DriverSQLite,
		DatabasePath:    "rutinas.db",
		DatabaseRetries: 1,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid sqlite", mutate: func(c *Config) {}},
		{
			name: "valid postgres",
			mutate: func(c *Config) {
				c.DatabaseDriver = DriverPostgres
				c.DatabaseHost = "localhost"
				c.DatabaseName = "rutinas"
				c.DatabaseUser = "postgres"
			},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.ServerPort = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DatabaseDriver = "oracle" },
			wantErr: "unsupported database driver",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.DatabasePath = "" },
			wantErr: "DB_PATH required",
		},
		{
			name: "postgres without host",
			mutate: func(c *Config) {
				c.DatabaseDriver = DriverPostgres
				c.DatabaseName = "rutinas"
				c.DatabaseUser = "postgres"
			},
			wantErr: "DB_HOST required",
		},
		{
			name:    "no connect attempts",
			mutate:  func(c *Config) { c.DatabaseRetries = 0 },
			wantErr: "DB_CONNECT_RETRIES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)

			err := validateConfig(config, log)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
