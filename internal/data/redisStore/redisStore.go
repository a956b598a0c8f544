package redisStore

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	Type   int
}

// NewStore connects to one logical redis database and pings it before returning.
func NewStore(ctx context.Context, addr, password string, dbType int) (*Store, error) {
	logger := logger_i.NewLogger("Redis Store").With("db", dbType)
	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              password,
		DB:                    dbType,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "addr", addr, "error", err)
		newClient.Close()
		return nil, fmt.Errorf("redis %s db %d: %w", addr, dbType, err)
	}

	logger.Info("Redis store init successfully", "addr", addr)
	return &Store{client: newClient, Type: dbType}, nil
}

// NewFromClient wraps an existing client, used with miniredis in tests.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	return s.client.Close()
}
