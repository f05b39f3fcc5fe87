package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SIGMA_API_BASE_URL", "http://localhost:8000/")
	t.Setenv("SIGMA_REQUEST_TIMEOUT", "10s")
	t.Setenv("ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.GetAPIBaseURL())
	assert.Equal(t, 10*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetAllowOrigins())
	assert.False(t, cfg.IsAssistantEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty base url", "SIGMA_API_BASE_URL", ""},
		{"relative base url", "SIGMA_API_BASE_URL", "localhost:8000"},
		{"ftp base url", "SIGMA_API_BASE_URL", "ftp://campus.test"},
		{"zero timeout", "SIGMA_REQUEST_TIMEOUT", "0s"},
		{"garbage timeout", "SIGMA_REQUEST_TIMEOUT", "soon"},
		{"zero burst", "SIGMA_AUTH_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SIGMA_API_BASE_URL", "http://localhost:8000")
			t.Setenv("SIGMA_REQUEST_TIMEOUT", "10s")
			t.Setenv("SIGMA_AUTH_BURST", "3")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
