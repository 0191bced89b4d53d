package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBMigrate      bool

	LogLevel           string
	JWTSecret          string
	CORSAllowedOrigins []string
	TripsPageLength    int
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// LoadEnv reads configuration from the process environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: str("APP_ADDR", ":8080"),
		GinMode: str("GIN_MODE", ""),

		DBHost:         str("DB_HOST", "127.0.0.1"),
		DBPort:         str("DB_PORT", "3306"),
		DBUser:         str("DB_USER", "root"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         str("DB_NAME", "easytix"),
		DBMaxOpenConns: num("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: num("DB_MAX_IDLE_CONNS", 25),
		DBMigrate:      flag("DB_MIGRATE", true),

		LogLevel:           str("LOG_LEVEL", "info"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSAllowedOrigins: list("CORS_ALLOWED_ORIGINS", defaultOrigins),
		TripsPageLength:    num("TRIPS_PAGE_LENGTH", 20),
	}
}

func str(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func num(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func flag(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func list(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, o := range strings.Split(v, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
