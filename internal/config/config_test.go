package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "localhost:50051", cfg.AuthGRPCAddress)
				assert.Equal(t, time.Duration(0), cfg.AuthGRPCRequestTimeout)
				assert.Equal(t, 50052, cfg.EventsGRPCPort)
				assert.Equal(t, "idempotency_key", cfg.EventIdempotencyMetadataKey)
				assert.True(t, cfg.RateLimitRegisterEnabled)
				assert.Equal(t, "accounts", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom rpc configuration",
			envVars: map[string]string{
				"AUTH_GRPC_ADDRESS":                 "auth:9000",
				"AUTH_GRPC_REQUEST_TIMEOUT_SECONDS": "3",
				"EVENTS_GRPC_PORT":                  "9001",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "auth:9000", cfg.AuthGRPCAddress)
				assert.Equal(t, 3*time.Second, cfg.AuthGRPCRequestTimeout)
				assert.Equal(t, 9001, cfg.EventsGRPCPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom register rate limit",
			envVars: map[string]string{
				"RATE_LIMIT_REGISTER_ENABLED":          "false",
				"RATE_LIMIT_REGISTER_REQUESTS_PER_SEC": "1.5",
				"RATE_LIMIT_REGISTER_BURST":            "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitRegisterEnabled)
				assert.Equal(t, 1.5, cfg.RateLimitRegisterRequestsPerSec)
				assert.Equal(t, 3, cfg.RateLimitRegisterBurst)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				require.NoError(t, os.Setenv(key, value))
			}

			tt.validate(t, Load())
		})
	}
}

func TestConfig_GetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "bogus"}).GetGinMode())
}
