package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets for access and refresh tokens are kept
// separate so a leaked access secret cannot be used to mint refresh tokens.
type Config struct {
	Env              string        // application environment (e.g. "development", "production")
	Port             string        // HTTP port to listen on
	DBUser           string        // database username
	DBPass           string        // database password (optional)
	DBHost           string        // database host address
	DBPort           string        // database port number
	DBName           string        // database name
	DBMaxOpen        int           // connection pool ceiling
	DBMaxIdle        int           // idle connections kept warm
	DBConnLifetime   time.Duration // max connection age before recycling
	JWTSecret        string        // secret used to sign access tokens
	JWTRefreshSecret string        // secret used to sign refresh tokens
	AccessTTL        time.Duration // access token lifetime
	RefreshTTL       time.Duration // refresh token lifetime
	BcryptCost       int           // bcrypt cost for password hashing
	RequestTimeout   time.Duration // overall per-request budget for DB work
	LogLevel         string        // zerolog level (trace/debug/info/warn/error)
	AMQPURL          string        // RabbitMQ URL for audit events (empty disables publishing)
}

// Production reports whether the process runs with production hardening
// (secure cookies, JSON logs).
func (c Config) Production() bool { return c.Env == "production" }

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:              getenv("APP_ENV", "development"),
		Port:             getenv("APP_PORT", "3000"),
		DBUser:           must("MYSQL_USER"),
		DBPass:           os.Getenv("MYSQL_PASSWORD"), // empty allowed
		DBHost:           must("MYSQL_HOST"),
		DBPort:           getenv("MYSQL_PORT", "3306"),
		DBName:           must("MYSQL_DATABASE"),
		DBMaxOpen:        envInt("MYSQL_MAX_OPEN_CONNS", 25),
		DBMaxIdle:        envInt("MYSQL_MAX_IDLE_CONNS", 25),
		DBConnLifetime:   envDur("MYSQL_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:        must("JWT_SECRET"),
		JWTRefreshSecret: must("JWT_REFRESH_SECRET"),
		AccessTTL:        envDur("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTTL:       envDur("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:       envInt("BCRYPT_COST", 10),
		RequestTimeout:   envDur("REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		AMQPURL:          os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
