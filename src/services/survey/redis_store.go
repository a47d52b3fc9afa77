package survey

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"Backend-Retreat-Survey/src/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseLock deletes the lock only if it still holds our token, so an
// expired lock taken over by another submit is left alone.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisStore keeps each session under four keys sharing a sliding TTL:
//
//	survey:{id}:answers     JSON AnswersState
//	survey:{id}:specify     JSON SpecifyState
//	survey:{id}:section     current section index
//	survey:{id}:checkpoint  JSON SubmitCheckpoint (only mid-submit)
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(sessionID, part string) string {
	return fmt.Sprintf("survey:%s:%s", sessionID, part)
}

func allKeys(sessionID string) []string {
	return []string{
		key(sessionID, "answers"),
		key(sessionID, "specify"),
		key(sessionID, "section"),
		key(sessionID, "checkpoint"),
	}
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (models.Progress, error) {
	p := models.Progress{Answers: models.Answers{}, Specify: models.SpecifyValues{}}

	vals, err := r.client.MGet(ctx, allKeys(sessionID)...).Result()
	if err != nil {
		return p, fmt.Errorf("load progress: %w", err)
	}

	if s, ok := vals[0].(string); ok {
		if err := json.Unmarshal([]byte(s), &p.Answers); err != nil {
			return p, fmt.Errorf("decode answers: %w", err)
		}
	}
	if s, ok := vals[1].(string); ok {
		if err := json.Unmarshal([]byte(s), &p.Specify); err != nil {
			return p, fmt.Errorf("decode specify values: %w", err)
		}
	}
	if s, ok := vals[2].(string); ok {
		if p.SectionIndex, err = strconv.Atoi(s); err != nil {
			return p, fmt.Errorf("decode section index: %w", err)
		}
	}
	if s, ok := vals[3].(string); ok {
		var cp models.SubmitCheckpoint
		if err := json.Unmarshal([]byte(s), &cp); err != nil {
			return p, fmt.Errorf("decode checkpoint: %w", err)
		}
		p.Checkpoint = &cp
	}
	return p, nil
}

func (r *RedisStore) SaveAnswers(ctx context.Context, sessionID string, answers models.Answers, specify models.SpecifyValues) error {
	a, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	s, err := json.Marshal(specify)
	if err != nil {
		return fmt.Errorf("encode specify values: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key(sessionID, "answers"), a, r.ttl)
		pipe.Set(ctx, key(sessionID, "specify"), s, r.ttl)
		r.touch(ctx, pipe, sessionID, "section", "checkpoint")
		return nil
	})
	if err != nil {
		return fmt.Errorf("save answers: %w", err)
	}
	return nil
}

func (r *RedisStore) SaveSection(ctx context.Context, sessionID string, index int) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key(sessionID, "section"), index, r.ttl)
		r.touch(ctx, pipe, sessionID, "answers", "specify", "checkpoint")
		return nil
	})
	if err != nil {
		return fmt.Errorf("save section: %w", err)
	}
	return nil
}

func (r *RedisStore) SaveCheckpoint(ctx context.Context, sessionID string, cp *models.SubmitCheckpoint) error {
	k := key(sessionID, "checkpoint")
	if cp == nil {
		if err := r.client.Del(ctx, k).Err(); err != nil {
			return fmt.Errorf("clear checkpoint: %w", err)
		}
		return nil
	}

	b, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := r.client.Set(ctx, k, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, allKeys(sessionID)...).Err(); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func (r *RedisStore) AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (func(), error) {
	k := key(sessionID, "submit-lock")
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, k, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		return nil, ErrSubmitInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the request context may already be cancelled
			_ = releaseLock.Run(context.Background(), r.client, []string{k}, token).Err()
		})
	}, nil
}

func (r *RedisStore) touch(ctx context.Context, pipe redis.Pipeliner, sessionID string, parts ...string) {
	if r.ttl <= 0 {
		return
	}
	for _, part := range parts {
		pipe.Expire(ctx, key(sessionID, part), r.ttl)
	}
}
