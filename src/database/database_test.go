package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, uri := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		client, err := NewRedis(context.Background(), uri)
		require.NoError(t, err, uri)
		require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
		assert.NoError(t, client.Close())
	}
	mr.CheckGet(t, "k", "v")
}

func TestNewRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), addr)
	assert.ErrorContains(t, err, "failed to connect Redis")
}

func TestAsynqConnOpt(t *testing.T) {
	opt, err := AsynqConnOpt("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, asynq.RedisClientOpt{Addr: "localhost:6379"}, opt)

	opt, err = AsynqConnOpt("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	client, ok := opt.(asynq.RedisClientOpt)
	require.True(t, ok)
	assert.Equal(t, "cache:6380", client.Addr)
	assert.Equal(t, "secret", client.Password)
	assert.Equal(t, 2, client.DB)
}

func TestConnectMongoRequiresURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "")
	assert.ErrorContains(t, err, "MONGO_URI")
}
