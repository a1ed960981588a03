package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":      "www.example:9000",
		"database_dsn":            "studio.db",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "45m",
		"bcrypt_cost":             11,
		"admin_emails":            []string{"admin@example.com"},
		"db_connect_timeout":      "5s",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "studio.db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 45*time.Minute, cfg.TokenValidityDuration)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, []string{"admin@example.com"}, cfg.AdminEmails)
		assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
	})

	t.Run("partial file keeps earlier layers", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"endpoint_addr_http": "override:8080",
			"bcrypt_cost":        13,
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "override:8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, 13, cfg.BcryptCost)
		// keys absent from the file must not be zeroed
		assert.Equal(t, "secretKey", cfg.SecretKey)
		assert.NotZero(t, cfg.TokenValidityDuration)
		assert.NotZero(t, cfg.DBConnectTimeout)
		assert.NotEmpty(t, cfg.DatabaseDSN)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrHTTP:      "defaults:1234",
			DatabaseDSN:           "studio.db",
			SecretKey:             "key",
			TokenValidityDuration: 2 * time.Minute,
			BcryptCost:            10,
			AdminEmails:           []string{"keep@example.com"},
			DBConnectTimeout:      10 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "studio.db", cfg.DatabaseDSN)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 2*time.Minute, cfg.TokenValidityDuration)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, []string{"keep@example.com"}, cfg.AdminEmails)
		assert.Equal(t, 10*time.Second, cfg.DBConnectTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

func Test_parseEnv(t *testing.T) {
	t.Setenv("STUDIOKEEPER_HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("STUDIOKEEPER_TOKEN_VALIDITY", "90m")
	t.Setenv("STUDIOKEEPER_ADMIN_EMAILS", "a@example.com, b@example.com,")
	t.Setenv("STUDIOKEEPER_BCRYPT_COST", "12")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "127.0.0.1:9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, 90*time.Minute, cfg.TokenValidityDuration)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 12, cfg.BcryptCost)
	// untouched
	assert.Equal(t, "secretKey", cfg.SecretKey)
}
