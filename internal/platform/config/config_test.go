package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, AuthModeDev, cfg.Auth.Mode)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Lifecycle.Enforce())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  readTimeout: 2s
database:
  dsn: postgres://file
  maxOpenConns: 20
auth:
  mode: jwt
  jwtSecret: file-secret
  ownerIdentity: owner-from-file
lifecycle:
  enforceTransitions: false
`), 0o600))

	t.Setenv("DB_DSN", "postgres://env")
	t.Setenv("OWNER_IDENTITY", "owner-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "owner-from-env", cfg.Auth.OwnerIdentity)
	assert.False(t, cfg.Lifecycle.Enforce())
}

func TestValidate_AuthModes(t *testing.T) {
	cfg := Default()
	cfg.Auth.Mode = AuthModeJWT
	assert.Error(t, Validate(cfg))

	cfg.Auth.JWTSecret = "s3cr3t"
	assert.NoError(t, Validate(cfg))

	cfg.Auth.Mode = AuthModeRemote
	assert.Error(t, Validate(cfg))

	cfg.Auth.Mode = "ldap"
	assert.Error(t, Validate(cfg))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
