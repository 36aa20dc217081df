package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/mosaic/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/mosaic/pkg/adapters/redis"
	"github.com/aretw0/mosaic/pkg/persistence/middleware"
	"github.com/aretw0/mosaic/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// buildStore assembles the snapshot store from config: redis when an address
// is set, in-memory otherwise, optionally wrapped in the encryption
// middleware. The returned locker is nil without redis.
func buildStore(cfg *Config) (ports.SnapshotStore, ports.DistributedLocker, func(), error) {
	var store ports.SnapshotStore
	var locker ports.DistributedLocker
	closer := func() {}

	if cfg.Redis.Addr != "" {
		ttl, err := cfg.redisTTL()
		if err != nil {
			return nil, nil, nil, err
		}
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisStore := redisAdapter.NewFromClient(client,
			redisAdapter.WithPrefix(cfg.Redis.Prefix),
			redisAdapter.WithTTL(ttl),
		)
		store = redisStore
		locker = redisAdapter.NewLocker(client, cfg.Redis.Prefix)
		closer = func() { _ = redisStore.Close() }
	} else {
		store = memory.NewStore()
	}

	if cfg.EncryptionKeyFile != "" {
		key, err := readKeyFile(cfg.EncryptionKeyFile)
		if err != nil {
			return nil, nil, nil, err
		}
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}

	return store, locker, closer, nil
}

func readKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encryption key: %w", err)
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("encryption key must be hex encoded: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
