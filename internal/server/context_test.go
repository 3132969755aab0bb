package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/agenda/internal/config"
)

func TestNewServerContext_RequiresConfig(t *testing.T) {
	_, err := NewServerContext(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestServerContext_RendererIsCached(t *testing.T) {
	sc, err := NewServerContext(context.Background(), config.Default(), nil)
	require.NoError(t, err)

	r1 := sc.Renderer()
	r2 := sc.Renderer()
	assert.Same(t, r1, r2)
}

func TestServerContext_StoreUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "carrier-pigeon"

	sc, err := NewServerContext(context.Background(), cfg, nil)
	require.NoError(t, err)

	_, err = sc.Store()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestServerContext_ShutdownIsIdempotent(t *testing.T) {
	sc, err := NewServerContext(context.Background(), config.Default(), nil)
	require.NoError(t, err)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context should be cancelled after shutdown")
	}
}
