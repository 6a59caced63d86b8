package stats

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
)

// RedisVisitCounter implements VisitCounter with one INCR key per visitor.
type RedisVisitCounter struct {
	client *redis.Client
}

func NewRedisVisitCounter(client *redis.Client) *RedisVisitCounter {
	return &RedisVisitCounter{client: client}
}

/*
Increment bumps the visitor's counter and pushes its expiry out.

Both commands run in one MULTI/EXEC so a counter is never left without a TTL.
*/
func (counter *RedisVisitCounter) Increment(context context.Context, visitor string) (int64, error) {
	key := constants.RedisPrefixVisits + visitor

	var incr *redis.IntCmd
	_, err := counter.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(context, key)
		pipe.Expire(context, key, constants.VisitTTL)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_visit_incr_failed: %w", err)
	}

	return incr.Val(), nil
}
