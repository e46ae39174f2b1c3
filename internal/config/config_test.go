package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CALBOOK_OAUTH_CLIENT_ID", "client-id")
	t.Setenv("CALBOOK_OAUTH_CLIENT_SECRET", "client-secret")
	t.Setenv("CALBOOK_CALENDAR_CALENDAR_ID", "shared@group.calendar.google.com")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "client-id", cfg.OAuth.ClientID)
	assert.Equal(t, "client-secret", cfg.OAuth.ClientSecret)
	assert.Equal(t, "shared@group.calendar.google.com", cfg.Calendar.CalendarID)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "token.json", cfg.OAuth.TokenFile)
	assert.Equal(t, "America/Los_Angeles", cfg.Calendar.Timezone)
	assert.Equal(t, int64(10), cfg.Calendar.MaxResults)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/calendar"}, cfg.OAuth.Scopes)
	assert.Equal(t, "http://localhost:8000/calendar/redirect/", cfg.OAuth.RedirectURL)
}

func TestLoadFlagAliases(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CALBOOK_CALENDAR_ID", "override@group.calendar.google.com")
	t.Setenv("CALBOOK_TOKEN_FILE", "/var/lib/calbook/token.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "override@group.calendar.google.com", cfg.Calendar.CalendarID)
	assert.Equal(t, "/var/lib/calbook/token.json", cfg.OAuth.TokenFile)
}

func TestLoadRequiresCalendarID(t *testing.T) {
	t.Setenv("CALBOOK_OAUTH_CLIENT_ID", "client-id")
	t.Setenv("CALBOOK_OAUTH_CLIENT_SECRET", "client-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar id is required")
}

func TestLoadRequiresClientCredentials(t *testing.T) {
	t.Setenv("CALBOOK_CALENDAR_CALENDAR_ID", "shared@group.calendar.google.com")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oauth.client_id")
}
