// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// CORSOrigins are the SPA origins allowed to make credentialed requests.
	CORSOrigins []string

	// Seed triggers sample-data seeding at startup when true.
	Seed bool

	// MigrationsPath is the directory containing SQL migration files.
	MigrationsPath string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// Auth holds session, CSRF, and credential settings.
	Auth AuthConfig

	// SMTP holds outgoing mail settings for the contact form.
	SMTP SMTPConfig

	// Upload holds image upload settings.
	Upload UploadConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "folio").
	User string

	// Password is the MariaDB password (default: "folio").
	Password string

	// Name is the database name (default: "folio").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// AuthConfig holds authentication, session, and CSRF settings.
type AuthConfig struct {
	// SecretKey seals session cookies and keys CSRF token derivation
	// (must be 32+ characters in production).
	SecretKey string

	// AdminUsername is the single admin account name. Compared
	// case-sensitively at login.
	AdminUsername string

	// AdminPasswordHash is the bcrypt hash of the admin password.
	AdminPasswordHash string

	// PasscodeHash is the bcrypt hash of the shared passcode gating
	// private case studies. Empty means the gate never opens.
	PasscodeHash string

	// AllowDevPassword permits the fixed development password when no
	// admin hash is configured. Resolved once at load time; never true
	// outside development.
	AllowDevPassword bool

	// SessionTTL is the sliding inactivity window for admin sessions.
	SessionTTL time.Duration

	// PasscodeTTL is the absolute lifetime of a passcode grant.
	PasscodeTTL time.Duration
}

// SMTPConfig holds outgoing mail settings. The contact form degrades to
// log-only when Host is empty.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	ToAddress   string

	// Encryption is "starttls" (default), "ssl", or "none".
	Encryption string
}

// IsConfigured returns true if enough settings are present to send mail.
func (s SMTPConfig) IsConfigured() bool {
	return s.Host != "" && s.FromAddress != ""
}

// UploadConfig holds image upload settings.
type UploadConfig struct {
	// MaxSize is the maximum upload file size in bytes.
	MaxSize int64

	// UploadsPath is the root directory for uploaded project images.
	UploadsPath string
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required production variables are missing.
func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnvInt("PORT", 8080),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:       getEnv("LOG_LEVEL", "debug"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		Seed:           getEnvBool("SEED", false),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "folio"),
			Password:        getEnv("DB_PASSWORD", "folio"),
			Name:            getEnv("DB_NAME", "folio"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Auth: AuthConfig{
			SecretKey:         getEnv("SECRET_KEY", ""),
			AdminUsername:     getEnv("ADMIN_USERNAME", "Admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			PasscodeHash:      getEnv("PASSCODE_HASH", ""),
			SessionTTL:        getEnvDuration("SESSION_TTL", 60*time.Minute),
			PasscodeTTL:       getEnvDuration("PASSCODE_TTL", 12*time.Hour),
		},

		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USER", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromAddress: getEnv("SMTP_FROM", ""),
			FromName:    getEnv("SMTP_FROM_NAME", "Portfolio Contact Form"),
			ToAddress:   getEnv("SMTP_TO", ""),
			Encryption:  getEnv("SMTP_ENCRYPTION", "starttls"),
		},

		Upload: UploadConfig{
			MaxSize:     getEnvInt64("MAX_UPLOAD_SIZE", 5*1024*1024), // 5MB
			UploadsPath: getEnv("UPLOADS_PATH", "./uploads"),
		},
	}

	if cfg.SMTP.ToAddress == "" {
		cfg.SMTP.ToAddress = cfg.SMTP.FromAddress
	}

	// Validate required fields in production. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	if cfg.IsProduction() {
		if cfg.Auth.SecretKey == "" {
			return nil, fmt.Errorf("SECRET_KEY is required in production")
		}
		if len(cfg.Auth.SecretKey) < 32 {
			return nil, fmt.Errorf("SECRET_KEY must be at least 32 characters in production")
		}
	}

	// Provide a dev-only default secret so local dev works without .env.
	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = "dev-secret-key-do-not-use-in-production!!"
	}

	// The fixed development password is a capability resolved exactly once,
	// here. It can never be enabled by request-time state.
	cfg.Auth.AllowDevPassword = cfg.IsDevelopment() && cfg.Auth.AdminPasswordHash == ""

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvInt64 reads an int64 env var or returns the default.
func getEnvInt64(key string, defaultVal int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool reads a boolean env var or returns the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "60m") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList reads a comma-separated env var or returns the default.
func getEnvList(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
