package config

import (
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	require.NoError(t, os.Setenv("SOLO_TEST_INT", "42"))
	defer os.Unsetenv("SOLO_TEST_INT")
	require.Equal(t, 42, getEnvInt("SOLO_TEST_INT", 1))

	require.NoError(t, os.Setenv("SOLO_TEST_INT", "lots"))
	require.Equal(t, 1, getEnvInt("SOLO_TEST_INT", 1))
	require.Equal(t, 7, getEnvInt("SOLO_TEST_MISSING", 7))
}

func TestGetEnvBool(t *testing.T) {
	require.NoError(t, os.Setenv("SOLO_TEST_BOOL", "true"))
	defer os.Unsetenv("SOLO_TEST_BOOL")
	require.True(t, getEnvBool("SOLO_TEST_BOOL", false))

	require.NoError(t, os.Setenv("SOLO_TEST_BOOL", "maybe"))
	require.False(t, getEnvBool("SOLO_TEST_BOOL", false))
}

func TestGetEnvLevel(t *testing.T) {
	require.NoError(t, os.Setenv("SOLO_TEST_LEVEL", "debug"))
	defer os.Unsetenv("SOLO_TEST_LEVEL")
	require.Equal(t, log.DebugLevel, getEnvLevel("SOLO_TEST_LEVEL", log.InfoLevel))

	require.NoError(t, os.Setenv("SOLO_TEST_LEVEL", "chatty"))
	require.Equal(t, log.InfoLevel, getEnvLevel("SOLO_TEST_LEVEL", log.InfoLevel))
}
