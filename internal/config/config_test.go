package config

import (
	"testing"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SIM_LEAD_TIME_MODE", "max")
	t.Setenv("SIM_ORDER_MONTHS", "1.5")
	t.Setenv("SIM_INITIAL_STOCK", "250")
	t.Setenv("CACHE_ENABLED", "true")

	viper.Reset()
	setDefaults()
	viper.AutomaticEnv()
	cfg := build()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "file", cfg.App.DatasetSource)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 300, cfg.Cache.SimulationTTLSeconds)

	defaults := cfg.Simulation.Defaults()
	assert.Equal(t, domain.LeadTimeMax, defaults.LeadTimeMode)
	assert.Equal(t, 1.5, defaults.OrderMonths)
	assert.Equal(t, 0.2, defaults.WarningRatio)
	assert.Equal(t, 30, defaults.DisplayDays)
	require.NotNil(t, defaults.InitialStock)
	assert.Equal(t, 250.0, *defaults.InitialStock)
}

func TestBuild_InitialStockUnset(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.AutomaticEnv()
	cfg := build()

	assert.Nil(t, cfg.Simulation.InitialStock)
	assert.Equal(t, domain.LeadTimeAverage, cfg.Simulation.Defaults().LeadTimeMode)
}

func TestSimulationConfig_UnknownModeFallsBackToAverage(t *testing.T) {
	c := SimulationConfig{LeadTimeMode: "weekly", OrderMonths: 3}
	assert.Equal(t, domain.LeadTimeAverage, c.Defaults().LeadTimeMode)
}
