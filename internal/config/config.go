package config // package config loads application configuration from environment variables

import (
    "fmt"     // fmt formats the configuration error returned by Load
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings"
    "time"

    "github.com/joho/godotenv" // godotenv reads a local .env file in development
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required values are DB_*, JWT_SECRET and the
// token TTLs; everything else has a default.
type Config struct {
    Env            string        // application environment (e.g. "dev", "prod")
    Port           string        // HTTP port to listen on
    LogLevel       string        // zap level name (debug, info, warn, error)
    DBUser         string        // database username
    DBPass         string        // database password (optional)
    DBHost         string        // database host address
    DBPort         string        // database port number
    DBName         string        // database name
    JWTSecret      string        // secret used to sign JWTs
    AccessTTLMin   int           // access token time-to-live in minutes
    RefreshTTLDays int           // refresh token time-to-live in days
    BcryptCost     int           // bcrypt cost for password hashing
    CatalogBaseURL string        // root of the upstream event catalog API
    CatalogTimeout time.Duration // per-request timeout for catalog calls
    SessionTTL     time.Duration // idle lifetime of a shopper workspace
    SweepEvery     time.Duration // how often idle workspaces are collected
    RabbitMQURL    string        // AMQP url; empty disables purchase events
}

// Load reads a .env file when present, then builds a Config from the
// environment.  Missing or malformed required variables are reported
// together in the returned error.
func Load() (Config, error) {
    _ = godotenv.Load() // a missing .env file is normal outside development

    var missing []string
    must := func(key string) string {
        v, ok := os.LookupEnv(key)
        if !ok || v == "" {
            missing = append(missing, key)
        }
        return v
    }
    mustInt := func(key string) int {
        s := must(key)
        if s == "" {
            return 0
        }
        n, err := strconv.Atoi(s)
        if err != nil {
            missing = append(missing, key+" (not an int)")
        }
        return n
    }

    cfg := Config{
        Env:            getenv("APP_ENV", "dev"),
        Port:           getenv("APP_PORT", "8080"),
        LogLevel:       getenv("LOG_LEVEL", "info"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     envInt("BCRYPT_COST", 10),
        CatalogBaseURL: getenv("CATALOG_BASE_URL", "https://duck-ticket-api-main.vercel.app"),
        CatalogTimeout: envDur("CATALOG_TIMEOUT", 10*time.Second),
        SessionTTL:     envDur("SESSION_TTL", 2*time.Hour),
        SweepEvery:     envDur("SESSION_SWEEP_EVERY", 5*time.Minute),
        RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
    }
    if len(missing) > 0 {
        return Config{}, fmt.Errorf("config: missing or invalid env vars: %s", strings.Join(missing, ", "))
    }
    return cfg, nil
}
