package survey

import (
	"context"
	"testing"
	"time"

	"Backend-Retreat-Survey/src/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore creates a RedisStore backed by a miniredis server.
func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)

	answers := models.Answers{
		"name":  models.TextAnswer("Ana"),
		"goals": models.ListAnswer("rest", "food"),
		"empty": models.ListAnswer(),
	}
	specify := models.SpecifyValues{"goals_food": "more greens"}

	require.NoError(t, store.SaveAnswers(ctx, "s1", answers, specify))
	require.NoError(t, store.SaveSection(ctx, "s1", 2))

	p, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, answers, p.Answers)
	assert.Equal(t, specify, p.Specify)
	assert.Equal(t, 2, p.SectionIndex)
	assert.Nil(t, p.Checkpoint)

	raw, err := mr.Get("survey:s1:answers")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","goals":["rest","food"],"empty":[]}`, raw)
	assert.Equal(t, time.Hour, mr.TTL("survey:s1:specify"))
}

func TestRedisStoreLoadUnknownSession(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)

	p, err := store.Load(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, p.Answers)
	assert.Empty(t, p.Specify)
	assert.Equal(t, 0, p.SectionIndex)
}

func TestRedisStoreCheckpointAndClear(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)

	require.NoError(t, store.SaveAnswers(ctx, "s1", models.Answers{"a": models.TextAnswer("x")}, nil))
	cp := &models.SubmitCheckpoint{SubmissionID: "42", AnswersWritten: true}
	require.NoError(t, store.SaveCheckpoint(ctx, "s1", cp))

	p, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, p.Checkpoint)
	assert.Equal(t, "42", p.Checkpoint.SubmissionID)
	assert.True(t, p.Checkpoint.AnswersWritten)

	require.NoError(t, store.SaveCheckpoint(ctx, "s1", nil))
	assert.False(t, mr.Exists("survey:s1:checkpoint"))

	require.NoError(t, store.Clear(ctx, "s1"))
	assert.Empty(t, mr.Keys())
}

func TestRedisStoreCorruptBlob(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Hour)
	require.NoError(t, mr.Set("survey:s1:answers", "{not json"))

	_, err := store.Load(context.Background(), "s1")
	assert.Error(t, err)
}

func TestRedisStoreSubmitLock(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)

	release, err := store.AcquireSubmitLock(ctx, "s1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("survey:s1:submit-lock"))

	_, err = store.AcquireSubmitLock(ctx, "s1", 30*time.Second)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	release()
	assert.False(t, mr.Exists("survey:s1:submit-lock"))

	// an expired lock can be taken over
	_, err = store.AcquireSubmitLock(ctx, "s1", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)
	_, err = store.AcquireSubmitLock(ctx, "s1", time.Second)
	assert.NoError(t, err)
}

func TestSessionOverRedis(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, time.Hour)

	s, err := OpenSession(ctx, "s1", testDefinition(), store)
	require.NoError(t, err)
	require.NoError(t, s.SetText(ctx, "name", "Ana"))
	_, err = s.SetCheckbox(ctx, "goals", "yoga", true)
	require.NoError(t, err)

	reopened, err := OpenSession(ctx, "s1", testDefinition(), store)
	require.NoError(t, err)
	assert.Equal(t, s.Answers(), reopened.Answers())
}
