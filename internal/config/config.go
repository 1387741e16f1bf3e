package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config holds all application settings.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Email        EmailConfig
	Verification VerificationConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings.
// Supported modes: single, sentinel, cluster.
type RedisConfig struct {
	// Mode selects the client topology. Defaults to "single".
	Mode string `mapstructure:"mode"`

	// Addrs lists host:port addresses, used by every mode. In single mode
	// the first entry wins when Addr is empty.
	Addrs []string `mapstructure:"addrs"`

	// Addr is the single-mode address, kept for compatibility.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName names the sentinel master (sentinel mode only).
	MasterName string `mapstructure:"master_name"`
}

// JWTConfig holds access token settings.
type JWTConfig struct {
	SecretKey      string `mapstructure:"secret_key"`
	ExpirationSecs int    `mapstructure:"expiration_secs"`
}

// EmailConfig holds notification delivery settings. When Enabled is false,
// codes go to the application log instead of being sent.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
	FromAddress  string `mapstructure:"from_address"`
}

// VerificationConfig holds verification code settings.
type VerificationConfig struct {
	// CodeTTLMinutes is how long an issued code stays valid. Defaults to 10.
	CodeTTLMinutes int `mapstructure:"code_ttl_minutes"`

	// CacheTTLSecs bounds staleness of cached profile reads. Defaults to 60.
	CacheTTLSecs int `mapstructure:"cache_ttl_secs"`
}

// PostgresConnectionString builds the PostgreSQL DSN.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from an optional file merged with explicitly
// bound environment variables.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("jwt.expiration_secs", 3600)
	vip.SetDefault("verification.code_ttl_minutes", 10)
	vip.SetDefault("verification.cache_ttl_secs", 60)

	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	vip.BindEnv("jwt.expiration_secs", "JWT_EXPIRATION_SECS")

	vip.BindEnv("email.enabled", "EMAIL_ENABLED")
	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from_address", "EMAIL_FROM_ADDRESS")

	vip.BindEnv("verification.code_ttl_minutes", "VERIFICATION_CODE_TTL_MINUTES")
	vip.BindEnv("verification.cache_ttl_secs", "VERIFICATION_CACHE_TTL_SECS")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("[Config] file '%s' not found, using environment variables and defaults", configPath)
			} else {
				log.Printf("[Config] warning: failed to read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Loaded configuration ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("JWT Secret Set: %t", cfg.JWT.SecretKey != "")
		log.Printf("Email Delivery Enabled: %t", cfg.Email.Enabled)
		log.Printf("Code TTL Minutes: %d", cfg.Verification.CodeTTLMinutes)
		log.Printf("----------------------------")
	}

	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required (check JWT_SECRET_KEY env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Email.Enabled {
		if cfg.Email.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend api key is required when email delivery is enabled (check RESEND_API_KEY env var)")
		}
		if cfg.Email.FromAddress == "" {
			return nil, fmt.Errorf("from address is required when email delivery is enabled (check EMAIL_FROM_ADDRESS env var)")
		}
	}

	return &cfg, nil
}
