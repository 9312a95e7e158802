package source

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/bizfaq/internal/db"
)

// KeyPrefix namespaces table keys written by the seed command.
const KeyPrefix = "bizfaq:table:"

// Redis reads tables stored as plain string values.
type Redis struct {
	kv db.KVStore
}

// NewRedis creates a Redis source over kv.
func NewRedis(kv db.KVStore) *Redis {
	return &Redis{kv: kv}
}

// Name identifies the driver.
func (r *Redis) Name() string { return "redis" }

// Fetch returns the value stored at key.
func (r *Redis) Fetch(ctx context.Context, key string) (string, error) {
	data, err := r.kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return string(data), nil
}

// Stat checks that key exists.
func (r *Redis) Stat(ctx context.Context, key string) error {
	ok, err := r.kv.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", key, db.ErrKeyNotFound)
	}
	return nil
}

// Put stores table text under key, replacing the previous value.
func (r *Redis) Put(ctx context.Context, key, text string) error {
	if err := r.kv.Set(ctx, key, []byte(text)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the table stored under key. A missing key is not an error.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.kv.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
