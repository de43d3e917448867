package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://earth-search.aws.element84.com/v1", cfg.STACEndpoint)
	assert.Equal(t, []string{"sentinel-2-l2a"}, cfg.STACCollections)
	assert.Equal(t, "http://titiler:8000", cfg.TiTilerEndpoint)
	assert.Equal(t, "visual", cfg.TileAsset)
	assert.Equal(t, 60*time.Second, cfg.TileTimeout)
	assert.Equal(t, 180, cfg.RecentDays)
	assert.Equal(t, 20.0, cfg.MaxCloud)
	assert.Empty(t, cfg.GoogleStaticMapsKey)
	assert.Equal(t, 16, cfg.StaticMapZoom)
	assert.Equal(t, "640x640", cfg.StaticMapSize)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STAC_ENDPOINT", "https://planetarycomputer.microsoft.com/api/stac/v1")
	t.Setenv("STAC_COLLECTIONS", "sentinel-2-l2a,landsat-c2-l2")
	t.Setenv("RECENT_DAYS", "90")
	t.Setenv("MAX_CLOUD", "12.5")
	t.Setenv("GOOGLE_STATICMAPS_KEY", "secret")
	t.Setenv("TILE_TIMEOUT", "15s")
	t.Setenv("TZ_NAME", "Europe/Brussels")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"sentinel-2-l2a", "landsat-c2-l2"}, cfg.STACCollections)
	assert.Equal(t, 90, cfg.RecentDays)
	assert.Equal(t, 12.5, cfg.MaxCloud)
	assert.Equal(t, "secret", cfg.GoogleStaticMapsKey)
	assert.Equal(t, 15*time.Second, cfg.TileTimeout)
	assert.Equal(t, "Europe/Brussels", cfg.Location().String())
}

func TestFromEnvInvalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"cloud above 100":   {"MAX_CLOUD", "120"},
		"negative days":     {"RECENT_DAYS", "-1"},
		"days not a number": {"RECENT_DAYS", "soon"},
		"endpoint not url":  {"TITILER_ENDPOINT", "titiler"},
		"unknown zone":      {"TZ_NAME", "Mars/Olympus"},
		"bad log level":     {"LOG_LEVEL", "loud"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
