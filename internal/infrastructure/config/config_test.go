package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("BOOKSTORE_JWT_SECRET", "s3cret")
	t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "pw")
	t.Setenv("BOOKSTORE_DATABASE_DRIVER", "postgres")
	t.Setenv("BOOKSTORE_JWT_ACCESS_TOKEN_EXPIRE", "2h")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Contains(t, cfg.Database.DSN(), "password=pw")
	assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("BOOKSTORE_JWT_SECRET", "")
	_, err := load(viper.New())
	assert.Error(t, err)
}

func TestRateLimitConfig_Limits(t *testing.T) {
	rl := RateLimitConfig{GeneralMax: 100, GeneralDevMax: 1000, AuthMax: 5, AuthDevMax: 50}

	g, a := rl.Limits(false)
	assert.Equal(t, 100, g)
	assert.Equal(t, 5, a)

	g, a = rl.Limits(true)
	assert.Equal(t, 1000, g)
	assert.Equal(t, 50, a)
}

func TestDatabaseConfig_DSN_MySQL(t *testing.T) {
	d := DatabaseConfig{Driver: "mysql", User: "root", Password: "pw", Host: "db", Port: 3306,
		DBName: "bookstore", Charset: "utf8mb4", Loc: "Asia/Shanghai"}
	assert.Equal(t, "root:pw@tcp(db:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}
