// Package infrastructure opens the configured backends for the binaries.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cv-generator/internal/adapter/repository"
	"cv-generator/internal/config"
	"cv-generator/internal/infrastructure/migration"
	infra "cv-generator/pkg/infrastructure"
)

// OpenStore connects the configured Store backend. The returned func
// releases its connections.
func OpenStore(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (repository.Store, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendFilesystem:
		log.Info("using filesystem store", "dir", cfg.Dir)
		return repository.NewFilesystemStore(cfg.Dir), noop, nil

	case config.BackendMemory:
		log.Warn("using in-memory store; documents are lost on exit")
		return repository.NewMemoryStore(), noop, nil

	case config.BackendPostgres:
		pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("using postgres store")
		return repository.NewPostgresStore(pool), pool.Close, nil

	case config.BackendMongo:
		client, err := infra.ConnectMongo(ctx, cfg.MongoURI, 10*time.Second)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		store, err := repository.NewMongoStore(ctx, client.Database(cfg.MongoDatabase).Collection("cv_documents"))
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		log.Info("using mongo store", "database", cfg.MongoDatabase)
		return store, closeFn, nil

	case config.BackendMinio:
		mc, err := infra.NewMinioClient(ctx, infra.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("using minio store", "bucket", cfg.Minio.Bucket)
		return repository.NewMinioStore(mc, cfg.Minio.Bucket), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// OpenDrafts returns a Redis draft cache when REDIS_URL is set, otherwise
// an in-memory one.
func OpenDrafts(ctx context.Context, cfg config.DraftConfig, log *slog.Logger) (repository.DraftCache, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("using in-memory draft cache")
		return repository.NewMemoryDrafts(), func() {}, nil
	}
	client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using redis draft cache", "ttl", cfg.TTL)
	return repository.NewRedisDrafts(client, cfg.TTL), func() { _ = client.Close() }, nil
}
