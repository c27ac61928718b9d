// Package config handles configuration for the server component, including
// defaults, environment overlay, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Forevo server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DataDir: directory holding users.json and messages.json.
//   - DatabaseDSN: optional PostgreSQL DSN; empty keeps the file store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: login token lifetime.
//   - StaticDir: directory served at /, empty disables static serving.
type Config struct {
	EndpointAddr                string
	DataDir                     string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	StaticDir                   string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DataDir = "data"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.StaticDir = "public"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file), an optional JSON
// file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
