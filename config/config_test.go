package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Chdir(dir)
}

func TestNew_AppliesDefaults(t *testing.T) {
	writeConfigFile(t, `
env:
  env: test
  serviceName: passport
secretKey:
  access: test-access-secret
  refresh: test-refresh-secret
`)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Token.RefreshTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestNew_ExplicitTokenWindows(t *testing.T) {
	writeConfigFile(t, `
env:
  env: test
secretKey:
  access: a
  refresh: r
token:
  accessTtl: 900s
  refreshTtl: 604800s
auth:
  bcryptCost: 10
`)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 900*time.Second, cfg.Token.AccessTTL)
	assert.Equal(t, 604800*time.Second, cfg.Token.RefreshTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestNew_EnvOverride(t *testing.T) {
	writeConfigFile(t, `
env:
  env: test
secretKey:
  access: from-file
  refresh: from-file
`)
	t.Setenv("SECRETKEY_ACCESS", "from-env")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, "from-file", cfg.SecretKey.Refresh)
}

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"secretKey": map[string]any{"access": "x", "refresh": "y"},
		"token":     map[string]any{"accessTtl": "900s"},
	}

	assert.Equal(t, "secretKey.access", canonicalizeEnvKey("SECRETKEY_ACCESS", existing))
	assert.Equal(t, "token.accessTtl", canonicalizeEnvKey("TOKEN_ACCESSTTL", existing))
	assert.Equal(t, "unknown.key", canonicalizeEnvKey("UNKNOWN_KEY", existing))
}
