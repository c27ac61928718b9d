package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddr, ":3000")
	assert.Equal(t, c.DataDir, "data")
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.SecretKey, "secretKey")
	assert.Equal(t, c.AccessTokenValidityDuration, 60*time.Minute)
	assert.Equal(t, c.StaticDir, "public")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	for _, k := range []string{"PORT", "ADDRESS", "DATA_DIR", "DATABASE_DSN", "SECRET_KEY", "STATIC_DIR"} {
		t.Setenv(k, "")
	}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.EndpointAddr, ":3000")
	assert.Equal(t, c.DataDir, "data")
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.SecretKey, "secretKey")
	assert.Equal(t, c.AccessTokenValidityDuration, 60*time.Minute)
}

func TestParseEnv_PortAndAddress(t *testing.T) {
	var c Config
	c.LoadDefaults()

	t.Setenv("PORT", "8080")
	parseEnv(&c)
	assert.Equal(t, c.EndpointAddr, ":8080")

	t.Setenv("ADDRESS", "127.0.0.1:9090")
	parseEnv(&c)
	assert.Equal(t, c.EndpointAddr, "127.0.0.1:9090")
}

func TestParseEnv_DataDirAndDSN(t *testing.T) {
	var c Config
	c.LoadDefaults()

	t.Setenv("DATA_DIR", "/var/lib/forevo")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/forevo")
	parseEnv(&c)

	assert.Equal(t, c.DataDir, "/var/lib/forevo")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@localhost:5432/forevo")
}
