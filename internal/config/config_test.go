package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.DetectorAPI.BaseURL)
	assert.Equal(t, 0.35, cfg.Matching.HeadFraction)
	assert.Equal(t, 0.5, cfg.Matching.HelmetThreshold)
	assert.Equal(t, 0.3, cfg.Matching.VestThreshold)
	assert.Equal(t, 0.4, cfg.Matching.MaskThreshold)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("VEST_IOU_THRESHOLD", "0.45")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.45, cfg.Matching.VestThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	t.Run("порог вне диапазона фатален", func(t *testing.T) {
		t.Setenv("HELMET_CONTAINMENT_THRESHOLD", "1.5")

		cfg := LoadConfig()
		assert.Error(t, cfg.Validate())
	})

	t.Run("отрицательная доля области фатальна", func(t *testing.T) {
		t.Setenv("HEAD_REGION_FRACTION", "-0.2")

		cfg := LoadConfig()
		assert.Error(t, cfg.Validate())
	})

	t.Run("некорректный порт фатален", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "70000")

		cfg := LoadConfig()
		assert.Error(t, cfg.Validate())
	})
}
