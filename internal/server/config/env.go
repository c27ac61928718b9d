package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a .env
// file first when one is present. A missing .env file is not an error.
//
// Recognized variables:
//
//	ADDRESS       full bind address (e.g. ":3000"); takes precedence over PORT
//	PORT          listen port, kept for compatibility with the original deployment
//	DATA_DIR      directory for the JSON collection files
//	DATABASE_DSN  PostgreSQL DSN; empty keeps the file store
//	SECRET_KEY    JWT signing secret
//	STATIC_DIR    directory served at /
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddr = ":" + v
	}
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		config.DataDir = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		config.StaticDir = v
	}
}
