package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

const markPrefix = "reminder:"

// ReminderMarkRepository records which (series, date, recipient)
// reminders have already been dispatched, so overlapping tick windows
// cannot double-fire. Marks expire on their own past the occurrence.
type ReminderMarkRepository struct {
	pool *redis.Pool
	ttl  time.Duration
}

func NewReminderMarkRepository(pool *redis.Pool, ttl time.Duration) *ReminderMarkRepository {
	return &ReminderMarkRepository{
		pool: pool,
		ttl:  ttl,
	}
}

// Mark sets the dispatch marker for the key and reports whether this
// call was the first to set it.
func (r *ReminderMarkRepository) Mark(ctx context.Context, key string) (bool, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	res, err := redis.String(conn.Do("SET", markPrefix+key, 1, "NX", "EX", int(r.ttl.Seconds())))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			// Someone already holds the marker.
			return false, nil
		}
		return false, fmt.Errorf("set mark: %w", err)
	}

	return res == "OK", nil
}
