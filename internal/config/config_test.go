package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	if v, ok := f[secretName]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Call Tracker API", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Scheduling.UpcomingLimit)
	assert.Equal(t, 24*30, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "0 * * * * *", cfg.Jobs.ReminderCron)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.StatsTTLDuration())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SCHEDULING_UPCOMINGLIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Scheduling.UpcomingLimit)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:        AppConfig{Environment: "development"},
			Database:   DatabaseConfig{Driver: "sqlite"},
			Scheduling: SchedulingConfig{UpcomingLimit: 5},
		}
	}

	t.Run("development gets a fallback secret", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DevelopmentJWTSecret, cfg.Auth.JWTSecret)
	})

	t.Run("production requires a secret", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = "mongodb"
		assert.Error(t, cfg.Validate())
	})

	t.Run("upcoming limit must be positive", func(t *testing.T) {
		cfg := valid()
		cfg.Scheduling.UpcomingLimit = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestApplySecrets(t *testing.T) {
	t.Run("overlays vault values", func(t *testing.T) {
		cfg := &Config{Database: DatabaseConfig{Host: "localhost", User: "local"}}
		source := fakeSecrets{
			"jwt-secret":             "vault-secret",
			"POSTGRES-MAIN-HOST":     "db.internal",
			"POSTGRES-MAIN-PASSWORD": "pw",
		}

		require.NoError(t, applySecrets(context.Background(), cfg, source))

		assert.Equal(t, "vault-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "local", cfg.Database.User)
		assert.Equal(t, "pw", cfg.Database.Password)
	})

	t.Run("missing jwt secret fails", func(t *testing.T) {
		cfg := &Config{}
		assert.Error(t, applySecrets(context.Background(), cfg, fakeSecrets{}))
	})
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, (&AppConfig{}).Location())
	assert.Equal(t, time.Local, (&AppConfig{Timezone: "Not/AZone"}).Location())
	assert.Equal(t, "UTC", (&AppConfig{Timezone: "UTC"}).Location().String())
}
