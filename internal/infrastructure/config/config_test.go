package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := defaultTestConfig()

	assert.Equal(t, "chickenviken-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "chickenviken_admin", cfg.DatabaseAdmin.DBName)
	assert.Equal(t, "chickenviken_user", cfg.DatabaseUser.DBName)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TokenExpiration)
	assert.Equal(t, 10, cfg.Availability.Attempts)
	assert.Equal(t, 3*time.Second, cfg.Availability.Interval)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestValidate_ConnectionPool(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.DatabaseUser.MaxIdleConns = 50

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestValidate_Production(t *testing.T) {
	longSecret := func(c byte) string {
		b := make([]byte, 40)
		for i := range b {
			b[i] = c
		}
		return string(b)
	}

	base := func() *Config {
		cfg := defaultTestConfig()
		cfg.App.Env = "production"
		cfg.JWT.AdminSecret = longSecret('a')
		cfg.JWT.UserSecret = longSecret('b')
		cfg.DatabaseAdmin.Password = "secret"
		cfg.DatabaseUser.Password = "secret"
		cfg.DatabaseAdmin.SSLMode = "require"
		cfg.DatabaseUser.SSLMode = "require"
		return cfg
	}

	t.Run("valid production config", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("requires both jwt secrets", func(t *testing.T) {
		cfg := base()
		cfg.JWT.UserSecret = ""
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects shared jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.UserSecret = cfg.JWT.AdminSecret
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		cfg := base()
		cfg.JWT.AdminSecret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects sslmode disable", func(t *testing.T) {
		cfg := base()
		cfg.DatabaseUser.SSLMode = "disable"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects wildcard cors", func(t *testing.T) {
		cfg := base()
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss/word",
		DBName: "chickenviken_user", SSLMode: "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word")
}
