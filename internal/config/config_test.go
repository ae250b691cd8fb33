package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RELAY_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "tododatabase", cfg.MongoDatabase)
	assert.Equal(t, "dashscope", cfg.RelayProvider)
	assert.Equal(t, DefaultRelayURL, cfg.RelayURL)
	assert.Equal(t, "qwen-turbo", cfg.RelayModel)
	assert.Equal(t, 10*time.Second, cfg.RelayTimeout)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, "plain", cfg.PasswordHashing)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RequireToken)
	assert.Equal(t, "sk-test", cfg.RelayAPIKey)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RELAY_API_KEY", "sk-test")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", "/tmp/todo.db")
	t.Setenv("MONGO_URI", "mongodb://user:pass@db:27017/?replicaSet=rs0")
	t.Setenv("RELAY_TIMEOUT", "3s")
	t.Setenv("PASSWORD_HASHING", "bcrypt")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REQUIRE_TOKEN", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "/tmp/todo.db", cfg.DatabasePath)
	assert.Equal(t, "mongodb://user:pass@db:27017/?replicaSet=rs0", cfg.MongoURI)
	assert.Equal(t, 3*time.Second, cfg.RelayTimeout)
	assert.Equal(t, "bcrypt", cfg.PasswordHashing)
	assert.True(t, cfg.RequireToken)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing api key", map[string]string{}},
		{"unknown driver", map[string]string{"RELAY_API_KEY": "k", "STORE_DRIVER": "redis"}},
		{"unknown provider", map[string]string{"RELAY_API_KEY": "k", "RELAY_PROVIDER": "openai"}},
		{"unknown hashing", map[string]string{"RELAY_API_KEY": "k", "PASSWORD_HASHING": "md5"}},
		{"token without secret", map[string]string{"RELAY_API_KEY": "k", "REQUIRE_TOKEN": "true"}},
		{"bad port", map[string]string{"RELAY_API_KEY": "k", "PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RELAY_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
