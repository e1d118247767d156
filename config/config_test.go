package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func readYAML(t *testing.T, content string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(content)))
}

func TestLoad(t *testing.T) {
	readYAML(t, `
arenaAPI:
  baseURL: http://127.0.0.1:9000
  timeout: 1500
draft:
  driver: minio
  bucket: drafts
`)

	var api ArenaAPIConfig
	require.NoError(t, Load(&api))
	assert.Equal(t, "http://127.0.0.1:9000", api.BaseURL)
	assert.Equal(t, 1500, api.Timeout)

	var d DraftConfig
	require.NoError(t, Load(&d))
	assert.Equal(t, DraftDriverMinIO, d.Driver)
	assert.Equal(t, "drafts", d.Bucket)
}

func TestLoadValidate(t *testing.T) {
	readYAML(t, `
arenaAPI:
  baseURL: not a url
draft:
  driver: minio
db:
  driver: postgres
  dsn: x
`)

	var api ArenaAPIConfig
	err := Load(&api)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arenaAPI")

	var d DraftConfig
	assert.Error(t, Load(&d))

	var db DBConfig
	assert.Error(t, Load(&db))
}

func TestLoadMissingSection(t *testing.T) {
	readYAML(t, "session: {}\n")

	var s SessionConfig
	require.NoError(t, Load(&s))
	assert.Empty(t, s.ArenaPath)

	var r RedisConfig
	assert.Error(t, Load(&r))
}

func TestLoggerConfigBuildZap(t *testing.T) {
	readYAML(t, `
logger:
  level: warn
  encoding: console
`)

	var cfg LoggerConfig
	require.NoError(t, Load(&cfg))
	zl, err := cfg.BuildZap()
	require.NoError(t, err)
	assert.False(t, zl.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zl.Core().Enabled(zapcore.WarnLevel))

	readYAML(t, "logger:\n  level: verbose\n")
	assert.Error(t, Load(&cfg))
}
