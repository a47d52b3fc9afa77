package database

import (
	"strings"

	"github.com/hibiken/asynq"
)

// AsynqConnOpt turns REDIS_URI into asynq connection options.
func AsynqConnOpt(uri string) (asynq.RedisConnOpt, error) {
	if strings.Contains(uri, "://") {
		return asynq.ParseRedisURI(uri)
	}
	return asynq.RedisClientOpt{Addr: uri}, nil
}
