package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYML = `server:
  port: 8080
  read_timeout: 15s
  write_timeout: 20s
  max_header_bytes: 1048576

database:
  host: localhost
  port: 5432
  user: postgres
  password: postgres
  name: clinicore
  sslmode: disable

identity:
  url: http://localhost:9999
  service_key: test-key
  timeout: 10s

auth:
  session_cookie: test_session
  session_sentinel: "yes"

redis:
  url: ""
  max_retries: 4
  retry_backoff: 250ms
  pool_size: 12
  min_idle_conns: 3

storage:
  bucket: ""
  region: us-east-1
  base_url: https://cdn.example.com

worker:
  repair_interval: 7m

rate_limit:
  enabled: true
  requests_per_second: 50
  burst: 100
`

func TestLoadConfig_MultiWordKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(testConfigYML), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	t.Setenv("IDENTITY_SERVICE_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 1048576, cfg.Server.MaxHeaderBytes)
	assert.Equal(t, "test-key", cfg.Identity.ServiceKey)
	assert.Equal(t, "test_session", cfg.Auth.SessionCookie)
	assert.Equal(t, "yes", cfg.Auth.SessionSentinel)
	assert.Equal(t, 4, cfg.Redis.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.RetryBackoff)
	assert.Equal(t, 12, cfg.Redis.PoolSize)
	assert.Equal(t, 3, cfg.Redis.MinIdleConns)
	assert.Equal(t, "https://cdn.example.com", cfg.Storage.BaseURL)
	assert.Equal(t, 7*time.Minute, cfg.Worker.RepairInterval)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
}
