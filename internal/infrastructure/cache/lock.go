package cache

import (
	"context"
	"time"

	"crediasesor-backoffice/pkg/id"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// DefaultLockTTL outlives the longest scheduled computation, so a running
// compute never loses its lock before it finishes.
const DefaultLockTTL = 10 * time.Minute

// PeriodLock serialises commission computations of the same period across
// processes. Keys look like commissions:lock:2025-07.
type PeriodLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPeriodLock(rdb *redis.Client, ttl time.Duration) *PeriodLock {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &PeriodLock{rdb: rdb, ttl: ttl}
}

func lockKey(period string) string { return "commissions:lock:" + period }

// TryLock returns acquired=false when another holder owns the period.
// The returned unlock is safe to call once the work is done; it never
// removes a lock that expired and was taken by someone else.
func (l *PeriodLock) TryLock(ctx context.Context, period string) (unlock func(), acquired bool, err error) {
	key := lockKey(period)
	token := id.NewID32()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}, true, nil
}
