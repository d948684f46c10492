package borehole

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosiss/borehole/config"
	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

func TestOpenRegistryDefaultsToMemory(t *testing.T) {
	reg, err := OpenRegistry(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	assert.IsType(t, &metadata.MemoryRegistry{}, reg)
}

func TestOpenRegistryMemory(t *testing.T) {
	cfg := &config.Config{Registry: &config.RegistryConfig{Backend: "memory"}}
	reg, err := OpenRegistry(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	md := metadata.New("record-1", "survey", nil)
	got, err := reg.Register(context.Background(), md)
	require.NoError(t, err)
	assert.Same(t, md, got)
}

func TestOpenRegistryRedis(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := &config.Config{Registry: &config.RegistryConfig{
		Backend:   "redis",
		Namespace: "test",
		Redis:     &config.RedisConfig{URL: "redis://" + srv.Addr()},
	}}
	reg, err := OpenRegistry(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	assert.IsType(t, &metadata.RedisRegistry{}, reg)
}

func TestOpenRegistryUnknownBackend(t *testing.T) {
	cfg := &config.Config{Registry: &config.RegistryConfig{Backend: "zookeeper"}}
	_, err := OpenRegistry(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, geoerr.IsKind(err, geoerr.KindConfiguration))
	assert.ErrorIs(t, err, geoerr.ErrInvalidConfig)
}
