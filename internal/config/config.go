package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses the external-call timeout values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env               string        // application environment (e.g. "dev", "prod")
    Port              string        // HTTP port to listen on
    DBUser            string        // database username
    DBPass            string        // database password (optional)
    DBHost            string        // database host address
    DBPort            string        // database port number
    DBName            string        // database name
    JWTSecret         string        // secret used to sign JWTs
    AccessTTLMin      int           // access token time‑to‑live in minutes
    RefreshTTLDays    int           // refresh token time‑to‑live in days
    BcryptCost        int           // bcrypt cost for password hashing
    GeminiAPIKey      string        // API key for the Gemini summarization model
    GeminiModel       string        // Gemini model name used for summaries
    YouTubeTimeout    time.Duration // upper bound for metadata/transcript fetches
    SummarizerTimeout time.Duration // upper bound for one summarization call
    HistoryLimit      int           // number of history entries shown on the main screen
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  External-call
// timeouts and the history limit have defaults so deployments only set
// them when tuning.
func Load() Config {
    return Config{
        Env:               must("APP_ENV"),      // environment (dev/test/prod)
        Port:              must("APP_PORT"),     // port to bind the HTTP server
        DBUser:            must("DB_USER"),      // database user
        DBPass:            os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:            must("DB_HOST"),      // database host
        DBPort:            must("DB_PORT"),      // database port
        DBName:            must("DB_NAME"),      // database name
        JWTSecret:         must("JWT_SECRET"),   // secret used for signing JWTs
        AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
        RefreshTTLDays:    mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
        BcryptCost:        mustInt("BCRYPT_COST"),            // bcrypt cost factor
        GeminiAPIKey:      must("GEMINI_API_KEY"),            // summarizer credentials
        GeminiModel:       getenv("GEMINI_MODEL", "gemini-2.0-flash"),
        YouTubeTimeout:    parseDur(getenv("YOUTUBE_TIMEOUT", "30s")),
        SummarizerTimeout: parseDur(getenv("SUMMARIZER_TIMEOUT", "90s")),
        HistoryLimit:      atoiDef(getenv("HISTORY_LIMIT", "5"), 5),
    }
}

// DefaultLanguages is the fixed seed for the language catalog.  The
// catalog is append-only; operators extend it directly in the database.
var DefaultLanguages = []string{"English", "Spanish", "Korean"}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

func atoiDef(s string, def int) int {
    n, err := strconv.Atoi(s)
    if err != nil || n <= 0 {
        return def
    }
    return n
}
