package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_ReturnsSharedInstance(t *testing.T) {
	first := GetLogger()
	require.NotNil(t, first)
	assert.Same(t, first, GetLogger())
}

func TestInitLogger_ConsoleOnly(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Logging.Output = []string{"stdout"}
	cfg.Logging.Level = "debug"

	logger := InitLogger(cfg)
	require.NotNil(t, logger)
	logger.Debug().Str("component", "logger").Msg("console writer configured")
}

func TestPrintBanner(t *testing.T) {
	assert.NotPanics(t, func() { PrintBanner("0.0.0") })
}
