package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig())

	assert.Equal(t, "8080", AppConfig.ServerPort)
	assert.Equal(t, "localhost:6379", AppConfig.RedisURL)
	assert.Equal(t, "https://graphql.anilist.co", AppConfig.AnilistAPIURL)
	assert.Empty(t, AppConfig.CronSecret, "no secret disables the cron check")
	assert.Equal(t, 10*time.Second, AppConfig.HTTPTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CRON_SECRET", "s3cret")
	t.Setenv("CACHE_TTL", "90s")
	require.NoError(t, LoadConfig())

	assert.Equal(t, "9090", AppConfig.ServerPort)
	assert.Equal(t, "s3cret", AppConfig.CronSecret)
	assert.Equal(t, 90*time.Second, AppConfig.CacheTTL)
}

func TestParseHelpersFallBack(t *testing.T) {
	assert.Equal(t, 0, parseInt("nope"))
	assert.Equal(t, time.Hour, parseDuration("nope"))
}
