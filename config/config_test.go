package config

import (
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaultPortIsBindable(t *testing.T) {
	t.Setenv("HTTP_PORT", "placeholder")
	os.Unsetenv("HTTP_PORT")

	cfg := LoadEnv()

	assert.Equal(t, "8080", cfg.Server.HTTPPort)
	_, err := net.ResolveTCPAddr("tcp", ":"+cfg.Server.HTTPPort)
	require.NoError(t, err)
}

func TestLoadEnvPortStripsLeadingColon(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")

	cfg := LoadEnv()

	assert.Equal(t, "9090", cfg.Server.HTTPPort)
	_, err := net.ResolveTCPAddr("tcp", ":"+cfg.Server.HTTPPort)
	require.NoError(t, err)
}
