package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_HOST", "DB_PORT", "DB_NAME", "TRIPS_PAGE_LENGTH", "DB_MIGRATE", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, "127.0.0.1", env.DBHost)
	assert.Equal(t, "3306", env.DBPort)
	assert.Equal(t, "easytix", env.DBName)
	assert.Equal(t, 20, env.TripsPageLength)
	assert.True(t, env.DBMigrate)
	assert.Equal(t, defaultOrigins, env.CORSAllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("TRIPS_PAGE_LENGTH", "50")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	env := LoadEnv()

	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, 50, env.TripsPageLength)
	assert.False(t, env.DBMigrate)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSAllowedOrigins)
	assert.Equal(t, 25, env.DBMaxOpenConns)
}

func TestDSN(t *testing.T) {
	dsn := DSN(Env{DBUser: "app", DBPassword: "s3cret", DBHost: "db", DBPort: "3307", DBName: "easytix"})

	assert.True(t, strings.HasPrefix(dsn, "app:s3cret@tcp(db:3307)/easytix?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
