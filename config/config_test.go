package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetupViper(v, "")
	v.SetConfigType("yaml")
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := New(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, 8999, cfg.Port)
	assert.Equal(t, 6060, cfg.AdminPort)
	assert.Equal(t, int64(1024*1024), cfg.MaxRequestSize)
	assert.False(t, cfg.EnableGzip)
	assert.Equal(t, 15000, cfg.Server.ReadTimeoutMs)
	assert.True(t, cfg.Server.TCPNoDelay)
	assert.True(t, cfg.Server.KeepAlive)
	assert.Equal(t, 180, cfg.Server.KeepAlivePeriodSeconds)
	assert.Equal(t, "beeswax-hexbid", cfg.Agent.ID)
	assert.Equal(t, "1.0.0", cfg.Agent.Version)
	assert.Empty(t, cfg.Agent.Params)
	assert.Equal(t, int64(0), cfg.Random.Seed)
	assert.Equal(t, ScoringTypeLength, cfg.Scoring.Type)
	assert.Equal(t, 20, cfg.Scoring.TimeoutMs)
	assert.Equal(t, 30, cfg.Scoring.HealthCheckIntervalSeconds)
	assert.Equal(t, "hexbid:score:", cfg.Scoring.Redis.KeyPrefix)
	assert.Equal(t, 0, cfg.Scoring.Cache.SizeBytes)
	assert.Equal(t, 0, cfg.Metrics.Prometheus.Port)
	assert.Equal(t, "hexbid", cfg.Metrics.Prometheus.Namespace)
}

func TestFullConfig(t *testing.T) {
	fullConfig := []byte(`
host: 127.0.0.1
port: 9000
admin_port: 9001
max_request_size: 2048
enable_gzip: true
server:
  read_timeout_ms: 50
  keep_alive: false
agent:
  id: my-agent
  version: 2.3.4
  params:
    model: m7
random:
  seed: 12
scoring:
  type: redis
  timeout_ms: 5
  redis:
    addr: redis:6379
    db: 2
  cache:
    size_bytes: 1048576
    ttl_seconds: 30
metrics:
  prometheus:
    port: 9100
`)
	v := newViper(t)
	require.NoError(t, v.ReadConfig(bytes.NewBuffer(fullConfig)))

	cfg, err := New(v)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 9001, cfg.AdminPort)
	assert.Equal(t, int64(2048), cfg.MaxRequestSize)
	assert.True(t, cfg.EnableGzip)
	assert.Equal(t, 50, cfg.Server.ReadTimeoutMs)
	assert.Equal(t, 15000, cfg.Server.WriteTimeoutMs)
	assert.False(t, cfg.Server.KeepAlive)
	assert.Equal(t, "my-agent", cfg.Agent.ID)
	assert.Equal(t, "2.3.4", cfg.Agent.Version)
	assert.Equal(t, map[string]string{"model": "m7"}, cfg.Agent.Params)
	assert.Equal(t, int64(12), cfg.Random.Seed)
	assert.Equal(t, ScoringTypeRedis, cfg.Scoring.Type)
	assert.Equal(t, 5, cfg.Scoring.TimeoutMs)
	assert.Equal(t, "redis:6379", cfg.Scoring.Redis.Addr)
	assert.Equal(t, 2, cfg.Scoring.Redis.DB)
	assert.Equal(t, 10, cfg.Scoring.Redis.PoolSize)
	assert.Equal(t, 1048576, cfg.Scoring.Cache.SizeBytes)
	assert.Equal(t, 30, cfg.Scoring.Cache.TTLSeconds)
	assert.Equal(t, 9100, cfg.Metrics.Prometheus.Port)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("HEXBID_PORT", "7777")
	t.Setenv("HEXBID_SCORING_TIMEOUT_MS", "3")

	cfg, err := New(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Port)
	assert.Equal(t, 3, cfg.Scoring.TimeoutMs)
}

func TestValidation(t *testing.T) {
	testCases := []struct {
		description string
		yaml        string
	}{
		{
			description: "port out of range",
			yaml:        "port: 70000",
		},
		{
			description: "admin port equal to port",
			yaml:        "port: 8000\nadmin_port: 8000",
		},
		{
			description: "negative max request size",
			yaml:        "max_request_size: -1",
		},
		{
			description: "unknown scoring type",
			yaml:        "scoring:\n  type: magic",
		},
		{
			description: "redis scoring without address",
			yaml:        "scoring:\n  type: redis",
		},
		{
			description: "empty agent id",
			yaml:        "agent:\n  id: \"\"",
		},
		{
			description: "negative cache ttl",
			yaml:        "scoring:\n  cache:\n    ttl_seconds: -5",
		},
		{
			description: "negative health check interval",
			yaml:        "scoring:\n  health_check_interval_seconds: -1",
		},
		{
			description: "prometheus port out of range",
			yaml:        "metrics:\n  prometheus:\n    port: 99999",
		},
	}

	for _, test := range testCases {
		v := newViper(t)
		require.NoError(t, v.ReadConfig(bytes.NewBufferString(test.yaml)), test.description)

		_, err := New(v)
		assert.Error(t, err, test.description)
	}
}
