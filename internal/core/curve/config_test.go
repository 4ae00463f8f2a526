package curve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/curve/internal/core/observability/log"
)

func TestLoadConfig(t *testing.T) {
	c, err := LoadConfig(strings.NewReader("cache_size: 128\nlog_level: debug\n"))
	require.NoError(t, err)
	require.Equal(t, 128, c.CacheSize)
	require.Equal(t, log.LevelDebug, c.Level())

	s := NewStore[int](c.Options(log.NewNop())...)
	require.Equal(t, 128, s.Stats().Size)
}

func TestLoadConfig_EmptyUsesDefaults(t *testing.T) {
	c, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), c)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("cache_size: 48\n"))
	require.ErrorIs(t, err, ErrInvalidCacheSize)

	_, err = LoadConfig(strings.NewReader("log_level: chatty\n"))
	require.Error(t, err)

	_, err = LoadConfig(strings.NewReader("cache_size: [1, 2]\n"))
	require.Error(t, err)

	_, err = LoadConfig(strings.NewReader("cache_szie: 128\n"))
	require.Error(t, err, "misspelled keys are rejected")
}
