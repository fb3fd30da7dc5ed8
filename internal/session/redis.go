package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	uploadKeyPrefix = "filmvault:upload:"
	deleteKeyPrefix = "filmvault:delete:"
)

// RedisStore keeps sessions in Redis so they survive restarts and can
// be shared across instances. Values are JSON, keyed per user.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) get(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode session %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) drop(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func uploadKey(userID int64) string { return fmt.Sprintf("%s%d", uploadKeyPrefix, userID) }
func deleteKey(userID int64) string { return fmt.Sprintf("%s%d", deleteKeyPrefix, userID) }

func (r *RedisStore) GetUpload(ctx context.Context, userID int64) (*UploadSession, error) {
	var s UploadSession
	if err := r.get(ctx, uploadKey(userID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) PutUpload(ctx context.Context, userID int64, s *UploadSession) error {
	return r.put(ctx, uploadKey(userID), s)
}

func (r *RedisStore) DropUpload(ctx context.Context, userID int64) error {
	return r.drop(ctx, uploadKey(userID))
}

func (r *RedisStore) GetDelete(ctx context.Context, userID int64) (*DeleteSession, error) {
	var s DeleteSession
	if err := r.get(ctx, deleteKey(userID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) PutDelete(ctx context.Context, userID int64, s *DeleteSession) error {
	return r.put(ctx, deleteKey(userID), s)
}

func (r *RedisStore) DropDelete(ctx context.Context, userID int64) error {
	return r.drop(ctx, deleteKey(userID))
}
