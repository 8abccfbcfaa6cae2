package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "tcp://docker-proxy:2375", cfg.DockerHost)
	assert.Equal(t, 10*time.Second, cfg.DockerTimeout)
	assert.Equal(t, 200, cfg.LogTailLines)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, cfg.AllowedHosts)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.True(t, cfg.OpenAPI)
	assert.True(t, cfg.SwaggerUI)
	assert.True(t, cfg.ReDoc)
	assert.False(t, cfg.DockerTLS)
	assert.Equal(t, "", cfg.DockerCertPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "", cfg.RootPath)
	assert.Equal(t, "", cfg.AuditDBPath)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DOCKER_HOST":            "unix:///var/run/docker.sock",
		"DOCKER_TIMEOUT_SECONDS": "3",
		"ROOT_PATH":              "/dockers/",
		"API_BASE_PATH":          "/dockers",
		"LOG_TAIL_LINES":         "50",
		"ALLOWED_ORIGINS":        " https://a.example , ,https://b.example",
		"ALLOWED_HOSTS":          "docker.example.com",
		"ENABLE_DOCS":            "off",
		"LOG_LEVEL":              "debug",
		"LISTEN_ADDR":            "127.0.0.1:9000",
	}))
	require.NoError(t, err)

	assert.Equal(t, "unix:///var/run/docker.sock", cfg.DockerHost)
	assert.Equal(t, 3*time.Second, cfg.DockerTimeout)
	assert.Equal(t, "/dockers", cfg.RootPath)
	assert.Equal(t, "/dockers", cfg.APIBasePath)
	assert.Equal(t, 50, cfg.LogTailLines)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"docker.example.com"}, cfg.AllowedHosts)
	assert.False(t, cfg.OpenAPI)
	assert.False(t, cfg.SwaggerUI)
	assert.False(t, cfg.ReDoc)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
}

func TestLogTailIsClamped(t *testing.T) {
	tests := map[string]int{
		"1":     10,
		"-5":    10,
		"10":    10,
		"999":   999,
		"1000":  1000,
		"50000": 1000,
	}

	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			cfg, err := FromLookup(lookupFrom(map[string]string{"LOG_TAIL_LINES": raw}))
			require.NoError(t, err)
			assert.Equal(t, want, cfg.LogTailLines)
		})
	}
}

func TestInvalidNumbers(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{"LOG_TAIL_LINES": "lots"}))
	assert.Error(t, err)

	_, err = FromLookup(lookupFrom(map[string]string{"DOCKER_TIMEOUT_SECONDS": "0"}))
	assert.Error(t, err)

	_, err = FromLookup(lookupFrom(map[string]string{"LOG_LEVEL": "chatty"}))
	assert.Error(t, err)
}

func TestEnableDocsValues(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "On"} {
		cfg, err := FromLookup(lookupFrom(map[string]string{"ENABLE_DOCS": v}))
		require.NoError(t, err)
		assert.True(t, cfg.OpenAPI && cfg.SwaggerUI && cfg.ReDoc, v)
	}
	for _, v := range []string{"0", "false", "no", ""} {
		cfg, err := FromLookup(lookupFrom(map[string]string{"ENABLE_DOCS": v}))
		require.NoError(t, err)
		assert.False(t, cfg.OpenAPI || cfg.SwaggerUI || cfg.ReDoc, v)
	}
}

func TestDocRoutesToggleIndependently(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"ENABLE_DOCS":  "false",
		"ENABLE_REDOC": "true",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.OpenAPI)
	assert.False(t, cfg.SwaggerUI)
	assert.True(t, cfg.ReDoc)

	cfg, err = FromLookup(lookupFrom(map[string]string{"ENABLE_SWAGGER_UI": "no"}))
	require.NoError(t, err)
	assert.True(t, cfg.OpenAPI)
	assert.False(t, cfg.SwaggerUI)
	assert.True(t, cfg.ReDoc)
}

func TestDockerTLS(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DOCKER_TLS_VERIFY": "1",
		"DOCKER_CERT_PATH":  " /etc/docker/certs ",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.DockerTLS)
	assert.Equal(t, "/etc/docker/certs", cfg.DockerCertPath)

	cfg, err = FromLookup(lookupFrom(map[string]string{"DOCKER_TLS_VERIFY": "off", "DOCKER_CERT_PATH": "/certs"}))
	require.NoError(t, err)
	assert.False(t, cfg.DockerTLS)

	_, err = FromLookup(lookupFrom(map[string]string{"DOCKER_TLS_VERIFY": "yes"}))
	assert.ErrorContains(t, err, "DOCKER_CERT_PATH")
}

func TestLogLevelAliases(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"LOG_LEVEL": "warning"}))
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)

	cfg, err = FromLookup(lookupFrom(map[string]string{"LOG_LEVEL": "CRITICAL"}))
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
}

func TestEmptyAllowedHostsDisablesCheck(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"ALLOWED_HOSTS": ""}))
	require.NoError(t, err)
	assert.Empty(t, cfg.AllowedHosts)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GATEWAY_TEST_ONLY_VAR=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("GATEWAY_TEST_ONLY_VAR") })

	_, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv("GATEWAY_TEST_ONLY_VAR"))

	_, err = Load(filepath.Join(dir, "missing.env"))
	assert.NoError(t, err)
}
