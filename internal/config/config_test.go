package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirForTest(t, t.TempDir())
	for _, key := range []string{"SERVER_PORT", "DATA_SOURCE", "DATA_DIR", "PATHS_LIMIT", "LOG_LEVEL", "GRAPH_URI"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.HTTP.Port)
	assert.Equal(t, defaultReadTimeout, cfg.HTTP.ReadTimeout)
	assert.Equal(t, DataSourceCSV, cfg.Data.Source)
	assert.Equal(t, defaultDataDir, cfg.Data.Dir)
	assert.Equal(t, defaultPathsLimit, cfg.Data.PathsLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("DATA_SOURCE", "Graph")
	t.Setenv("DATA_DIR", "/srv/openflights")
	t.Setenv("PATHS_LIMIT", "5")
	t.Setenv("SERVER_METRICS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, DataSourceGraph, cfg.Data.Source)
	assert.Equal(t, "/srv/openflights", cfg.Data.Dir)
	assert.Equal(t, 5, cfg.Data.PathsLimit)
	assert.True(t, cfg.HTTP.MetricsEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cases := map[string][2]string{
		"port out of range": {"SERVER_PORT", "70000"},
		"bad port":          {"SERVER_PORT", "http"},
		"bad timeout":       {"SERVER_WRITE_TIMEOUT", "soon"},
		"bad data source":   {"DATA_SOURCE", "parquet"},
		"zero paths limit":  {"PATHS_LIMIT", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseDataSource(t *testing.T) {
	src, err := ParseDataSource(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, DataSourceCSV, src)

	_, err = ParseDataSource("")
	assert.Error(t, err)
}
