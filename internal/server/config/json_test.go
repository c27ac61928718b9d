package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysFields(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "conf.json")
	data := `{
		"endpoint_addr": ":4000",
		"data_dir": "jsondata",
		"secret_key": "fromjson",
		"access_token_validity_minutes": 5
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o660))

	withArgs(t, []string{"-c", path})

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddr, ":4000")
	assert.Equal(t, c.DataDir, "jsondata")
	assert.Equal(t, c.SecretKey, "fromjson")
	assert.Equal(t, c.AccessTokenValidityDuration, 5*time.Minute)
	// untouched fields keep their defaults
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.StaticDir, "public")
}

func TestParseJson_NoFileFlag(t *testing.T) {
	withArgs(t, []string{})

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddr, ":3000")
}

func TestParseJson_PanicsOnMissingFile(t *testing.T) {
	withArgs(t, []string{"-c", filepath.Join(t.TempDir(), "nope.json")})

	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(&c) })
}
