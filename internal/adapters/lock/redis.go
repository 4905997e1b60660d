package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

const (
	keyPrefix  = "zapdeploy:session:"
	DefaultTTL = 30 * time.Minute
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// refreshScript extends the key only while it still holds our token
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker guards sessions across machines with SET NX and a TTL.
// A held lease is refreshed every third of the TTL until it is released, so
// a run longer than the TTL keeps its lock while a crashed one loses it.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker connects to addr and verifies the connection
func NewRedisLocker(ctx context.Context, addr string, db int, ttl time.Duration) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection
func (l *RedisLocker) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

// Describe names the server and lease length
func (l *RedisLocker) Describe() string {
	opts := l.client.Options()
	return fmt.Sprintf("%s db=%d ttl=%s", opts.Addr, opts.DB, l.ttl)
}

// Acquire sets the session key if nobody holds it
func (l *RedisLocker) Acquire(ctx context.Context, key, owner string) (usecase.SessionLease, error) {
	token := owner + ":" + uuid.NewString()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		holder, _ := l.client.Get(ctx, keyPrefix+key).Result()
		return nil, fmt.Errorf("%w: %s held by %s", domain.ErrSessionLocked, key, holder)
	}

	refreshCtx, cancel := context.WithCancel(context.Background())
	lease := &redisLease{
		client: l.client,
		key:    keyPrefix + key,
		token:  token,
		ttl:    l.ttl,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go lease.keepAlive(refreshCtx)
	return lease, nil
}

type redisLease struct {
	client *redis.Client
	key    string
	token  string
	ttl    time.Duration

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (l *redisLease) keepAlive(ctx context.Context) {
	defer close(l.done)

	interval := l.ttl / 3
	if interval <= 0 {
		interval = l.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			held, err := refreshScript.Run(ctx, l.client, []string{l.key}, l.token, l.ttl.Milliseconds()).Int()
			if err == nil && held == 0 {
				// Someone else owns the key now
				return
			}
		}
	}
}

func (l *redisLease) Release(ctx context.Context) error {
	l.once.Do(func() {
		l.cancel()
		<-l.done
	})
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return nil
}

var _ usecase.SessionLocker = (*RedisLocker)(nil)
