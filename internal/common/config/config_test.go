package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_A", "va")
	in := []byte("a: ${X_A:da}\nb: ${X_B:db}")
	out := resolveEnv(in)
	assert.Contains(t, string(out), "a: va")
	assert.Contains(t, string(out), "b: db")
}

func TestLoadConfig(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)

	t.Setenv("SG_REDIS_ADDR", "10.0.0.1:6379")
	yaml := `
port: 1234
pid: ${SG_PID:/tmp/sg.pid}
auth:
  namespace: token
  lang: zh
session:
  type: redis
  redis:
    addr: ${SG_REDIS_ADDR:localhost:6379}
    read_timeout: 200ms
upstream:
  url: http://backend:8080
`
	file := filepath.Join(tmp, "sessiongate.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, path, err := LoadConfig("sessiongate.yaml")
	require.NoError(t, err)
	realFile, _ := filepath.EvalSymlinks(file)
	realPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, realFile, realPath)

	assert.Equal(t, 1234, cfg.Port)
	assert.Equal(t, "/tmp/sg.pid", cfg.PID)
	assert.Equal(t, "token", cfg.Auth.Namespace)
	assert.Equal(t, cnst.DefaultLoginType, cfg.Auth.LoginType)
	assert.Equal(t, cnst.DefaultFilterName, cfg.Auth.FilterName)
	assert.Equal(t, "zh", cfg.Auth.Lang)
	assert.Equal(t, cnst.SessionStoreRedis, cfg.Session.Type)
	assert.Equal(t, "10.0.0.1:6379", cfg.Session.Redis.Addr)
	assert.Equal(t, cnst.RedisClusterTypeSingle, cfg.Session.Redis.ClusterType)
	assert.Equal(t, 200*time.Millisecond, cfg.Session.Redis.ReadTimeout)
	assert.Equal(t, "http://backend:8080", cfg.Upstream.URL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, cnst.DefaultPort, cfg.Port)
	assert.Equal(t, cnst.DefaultNamespace, cfg.Auth.Namespace)
	assert.Equal(t, cnst.DefaultLoginType, cfg.Auth.LoginType)
	assert.Equal(t, cnst.LangDefault, cfg.Auth.Lang)
	assert.Equal(t, cnst.SessionStoreRedis, cfg.Session.Type)
	assert.Equal(t, cnst.DefaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, cnst.AppName, cfg.Metrics.Namespace)
	assert.Equal(t, cnst.AppName, cfg.Tracing.ServiceName)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("port: [1"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *GatewayConfig {
		cfg, err := Parse([]byte("session:\n  type: memory\n  memory:\n    file: sessions.yaml\n"))
		require.NoError(t, err)
		return cfg
	}

	t.Run("memory store is valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("memory without seed file", func(t *testing.T) {
		cfg := base()
		cfg.Session.Memory.File = ""
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrMissingMemoryFile)
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Port = 70000
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrInvalidPort)
	})

	t.Run("empty namespace", func(t *testing.T) {
		cfg := base()
		cfg.Auth.Namespace = ""
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrEmptyNamespace)
	})

	t.Run("empty login type", func(t *testing.T) {
		cfg := base()
		cfg.Auth.LoginType = ""
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrEmptyLoginType)
	})

	t.Run("redis without addr", func(t *testing.T) {
		cfg := base()
		cfg.Session.Type = cnst.SessionStoreRedis
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrMissingRedisAddr)
	})

	t.Run("db without dsn", func(t *testing.T) {
		cfg := base()
		cfg.Session.Type = cnst.SessionStoreDB
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrMissingDSN)
	})

	t.Run("unknown store", func(t *testing.T) {
		cfg := base()
		cfg.Session.Type = "etcd"
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrUnsupportedStore)
	})

	t.Run("relative upstream", func(t *testing.T) {
		cfg := base()
		cfg.Upstream.URL = "/backend"
		assert.ErrorIs(t, cfg.Validate(), cnst.ErrInvalidUpstream)
	})
}

func TestParse_SampleConfig(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "configs", cnst.SessionGateYaml))
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, cnst.DefaultPort, cfg.Port)
	assert.Equal(t, "satoken", cfg.Auth.Namespace)
	assert.Equal(t, "login", cfg.Auth.LoginType)
	assert.Equal(t, cnst.SessionStoreRedis, cfg.Session.Type)
	assert.Equal(t, 3*time.Second, cfg.Session.Redis.DialTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Empty(t, cfg.Upstream.URL)
}
