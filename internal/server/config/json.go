package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/forevo/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its non-empty fields are copied into the
// runtime Config struct.
type JsonConfig struct {
	EndpointAddr               string `json:"endpoint_addr"`
	DataDir                    string `json:"data_dir"`
	DatabaseDSN                string `json:"database_dsn"`
	SecretKey                  string `json:"secret_key"`
	AccessTokenValidityMinutes int    `json:"access_token_validity_minutes"`
	StaticDir                  string `json:"static_dir"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DataDir != "" {
		config.DataDir = c.DataDir
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityMinutes) * time.Minute
	}
	if c.StaticDir != "" {
		config.StaticDir = c.StaticDir
	}
}
