package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only if the caller still owns it, so a
// lock that expired and was re-acquired elsewhere is never released by the
// original holder.
var releaseScript = redis.NewScript(`
    if redis.call("get", KEYS[1]) == ARGV[1] then
        return redis.call("del", KEYS[1])
    else
        return 0
    end
`)

// KeyLock is a SET NX lock scoped to a single key. The submission ledger
// takes one per (user, question|problem) pair to serialize the
// create-or-update decision; the database unique constraint remains the
// final authority if the lock expires mid-flight.
type KeyLock struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewKeyLock namespaces every lock under prefix so the keys stay
// distinguishable from other redis usage on the same instance.
func NewKeyLock(rdb *redis.Client, prefix string, ttl time.Duration) *KeyLock {
	return &KeyLock{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Acquire blocks until the lock is held or ctx is done. Contention on a
// single submission key is rare and short-lived, so a small retry delay is
// enough.
func (l *KeyLock) Acquire(ctx context.Context, key string) (release func(), err error) {
	key = l.prefix + ":" + key
	token := uuid.NewString()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}

	return func() {
		_, _ = releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Result()
	}, nil
}
