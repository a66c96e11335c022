package config

import "os"

// Config holds application configuration values.
type Config struct {
	DatabaseDSN   string
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:pdv.db"
	}

	adminUser := os.Getenv("ADMIN_USERNAME")
	if adminUser == "" {
		adminUser = "admin"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin"
	}

	return Config{
		DatabaseDSN:   dsn,
		AdminUsername: adminUser,
		AdminPassword: adminPassword,
	}
}
