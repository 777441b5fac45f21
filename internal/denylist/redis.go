package denylist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 5 * time.Second

// RedisSource reads a list stored as a Redis list. A missing key is an empty list.
type RedisSource struct {
	Client redis.Cmdable
	Key    string
	// Timeout bounds the LRANGE call; zero means 5s.
	Timeout time.Duration
}

// Lines fetches every element of the list, skipping blank and comment entries.
func (s RedisSource) Lines() ([]string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	values, err := s.Client.LRange(ctx, s.Key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.Key, err)
	}

	entries := make([]string, 0, len(values))
	for _, v := range values {
		if e, ok := cleanEntry(v); ok {
			entries = append(entries, e)
		}
	}

	return entries, nil
}

func (s RedisSource) String() string {
	return "redis:" + s.Key
}

// RedisSources binds every category to the Redis list "<prefix><category>".
func RedisSources(client redis.Cmdable, prefix string) Sources {
	out := make(Sources, len(categories))
	for _, c := range AllCategories() {
		out[c] = RedisSource{Client: client, Key: prefix + c.String()}
	}
	return out
}
