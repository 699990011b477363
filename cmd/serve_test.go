package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeConfig_EnvironmentOverridesDefaults(t *testing.T) {
	// GIVEN CAPACITY_SIM_* variables
	t.Setenv("CAPACITY_SIM_ADDR", "127.0.0.1:9999")
	t.Setenv("CAPACITY_SIM_WORKERS", "8")
	t.Setenv("CAPACITY_SIM_SHUTDOWN_TIMEOUT", "3s")

	// WHEN the serve configuration is resolved
	v, err := newServeViper(serveCmd)
	require.NoError(t, err)
	cfg := loadServeConfig(v)

	// THEN the environment values are used
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestServeConfig_Defaults(t *testing.T) {
	v, err := newServeViper(serveCmd)
	require.NoError(t, err)
	cfg := loadServeConfig(v)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestRunServer_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, serveConfig{Addr: "127.0.0.1:0", Workers: 1, ShutdownTimeout: time.Second})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
