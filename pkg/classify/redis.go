package classify

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

const systemRedis = "redis"

// Redis classifies an error returned by go-redis. The missing-key
// sentinel [redis.Nil] classifies as not_found, context errors as
// timeout or canceled, and anything else as internal. If err is nil,
// Redis returns nil.
//
// Example:
//
//	val, err := rdb.Get(ctx, key).Result()
//	if err != nil {
//	    return classify.Redis(err, "read session failed").Ctx(map[string]any{
//	        "redis.key": key,
//	    })
//	}
func Redis(err error, message string) *fault.Error {
	if err == nil {
		return nil
	}
	if kind, ok := contextKind(err); ok {
		return classified(err, message, systemRedis, kind, Retryable(kind))
	}
	if errors.Is(err, redis.Nil) {
		return classified(err, message, systemRedis, KindNotFound, false)
	}
	return classified(err, message, systemRedis, KindInternal, false)
}
