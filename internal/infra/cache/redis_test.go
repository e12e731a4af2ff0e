package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/config"
)

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)
	server.RequireAuth("s3cret")

	client, err := NewRedisClient(&config.RedisConfig{
		URL:      "redis://" + server.Addr() + "/0",
		Password: "s3cret",
		DB:       2,
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 2, client.Options().DB)
	assert.True(t, HealthChecker(client)())
}

func TestNewRedisClientErrors(t *testing.T) {
	_, err := NewRedisClient(&config.RedisConfig{URL: "not a url"})
	assert.ErrorContains(t, err, "failed to parse redis url")

	server := miniredis.RunT(t)
	server.RequireAuth("s3cret")
	_, err = NewRedisClient(&config.RedisConfig{URL: "redis://" + server.Addr()})
	assert.ErrorContains(t, err, "failed to ping redis")
}

func TestHealthCheckerReportsOutage(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + server.Addr()})
	require.NoError(t, err)
	defer client.Close()

	healthy := HealthChecker(client)
	assert.True(t, healthy())

	server.Close()
	assert.False(t, healthy())
}
