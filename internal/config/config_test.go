package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"SPORTHALL_CONTENT_URL":         "https://fn.example/content",
		"SPORTHALL_FEEDBACK_URL":        "https://fn.example/feedback",
		"SPORTHALL_FEEDBACK_SUBMIT_URL": "https://fn.example/send",
		"SPORTHALL_DOCUMENT_URL":        "https://fn.example/docs",
		"SPORTHALL_IMAGE_UPLOAD_URL":    "https://fn.example/photo",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := FromEnv(envMap(baseEnv()))
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, c.Addr)
	assert.Equal(t, EnvDevelopment, c.Env)
	assert.Equal(t, DefaultDBPath, c.DBPath)
	assert.Equal(t, 15*time.Second, c.HTTPTimeout)
	assert.Equal(t, 30*time.Second, c.PollInterval)
	assert.Nil(t, c.CSRFKey)
	assert.Equal(t, DefaultAdminPassword, c.AdminPassword)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.Empty(t, c.TrustedOrigins)
	assert.False(t, c.IsProduction())
}

func TestFromEnv_MissingStoreURLs(t *testing.T) {
	env := baseEnv()
	delete(env, "SPORTHALL_CONTENT_URL")
	delete(env, "SPORTHALL_DOCUMENT_URL")
	_, err := FromEnv(envMap(env))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissing))
	assert.Contains(t, err.Error(), "SPORTHALL_CONTENT_URL")
	assert.Contains(t, err.Error(), "SPORTHALL_DOCUMENT_URL")
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["SPORTHALL_POLL_INTERVAL"] = "5s"
	env["SPORTHALL_HTTP_TIMEOUT"] = "2s"
	env["SPORTHALL_CSRF_KEY"] = strings.Repeat("ab", 32)
	env["SPORTHALL_ENV"] = EnvProduction
	env["SPORTHALL_ADMIN_PASSWORD"] = "changeme"
	env["SPORTHALL_TRUSTED_ORIGINS"] = "sport.example, www.sport.example,"
	env["LOG_LEVEL"] = "debug"
	c, err := FromEnv(envMap(env))
	require.NoError(t, err)
	assert.Equal(t, "changeme", c.AdminPassword)
	assert.Equal(t, []string{"sport.example", "www.sport.example"}, c.TrustedOrigins)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.PollInterval)
	assert.Equal(t, 2*time.Second, c.HTTPTimeout)
	assert.Len(t, c.CSRFKey, 32)
	assert.True(t, c.IsProduction())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"SPORTHALL_POLL_INTERVAL": "soon",
		"SPORTHALL_HTTP_TIMEOUT":  "-1s",
		"SPORTHALL_CSRF_KEY":      "short",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			env := baseEnv()
			env[key] = val
			_, err := FromEnv(envMap(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestFromEnv_ProductionRequiresCSRFKey(t *testing.T) {
	env := baseEnv()
	env["SPORTHALL_ENV"] = EnvProduction
	_, err := FromEnv(envMap(env))
	require.ErrorIs(t, err, ErrMissing)
}

func TestFromEnv_ProductionRequiresAdminPassword(t *testing.T) {
	env := baseEnv()
	env["SPORTHALL_ENV"] = EnvProduction
	env["SPORTHALL_CSRF_KEY"] = strings.Repeat("ab", 32)
	_, err := FromEnv(envMap(env))
	require.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "SPORTHALL_ADMIN_PASSWORD")
}
