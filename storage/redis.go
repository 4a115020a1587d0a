package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"sentipost/config"
	"sentipost/logger"
)

// RedisStore хранит снапшот в Redis под ключом senti-storage
type RedisStore struct {
	client *redis.Client
}

func OpenRedis(conf config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})

	// Тест соединения
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load() (*Snapshot, error) {
	ctx := context.Background()

	val, err := s.client.Get(ctx, SnapshotKey).Result()
	if err == redis.Nil {
		// Фолбэк на ключ старых версий
		val, err = s.client.Get(ctx, LegacySnapshotKey).Result()
	}
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		logger.L.Warnf("storage: corrupt snapshot in redis: %v", err)
		return nil, nil
	}
	return &snap, nil
}

func (s *RedisStore) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), SnapshotKey, data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
