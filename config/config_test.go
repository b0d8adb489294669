package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CRON_ENABLED", "")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 8080, env.PORT)
	assert.Equal(t, "sqlite", env.DB_DRIVER)
	assert.Equal(t, "academic.db", env.DB_PATH)
	assert.Equal(t, "questions.db", env.QUESTION_DB_PATH)
	assert.Equal(t, 12*time.Hour, env.SESSION_TTL)
	assert.True(t, env.CRON_ENABLED)
	assert.Equal(t, 100, env.RATE_LIMIT_REQUESTS)
}

func TestGetRejectsInvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Get()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "soon")
		_, err := Get()
		assert.Error(t, err)
	})
}

func TestGetRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Get()
	assert.Error(t, err)
}

func TestGetForCLIAllowsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_TTL", "")

	env, err := GetForCLI()
	require.NoError(t, err)
	assert.Empty(t, env.JWT_SECRET)
}
