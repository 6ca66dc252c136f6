package app

import (
	"context"

	"github.com/Certs365/auth-service/internal/config"
	"github.com/Certs365/auth-service/internal/logger"
	"github.com/Certs365/auth-service/internal/mongo"
	"github.com/Certs365/auth-service/internal/redis"
	"github.com/Certs365/auth-service/internal/store"
)

type Infra struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	mongoClient, err := mongo.New(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	db := mongoClient.Database(cfg.MongoDatabase)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		Mongo: mongoClient,
		Redis: redisClient,
	}, nil
}
