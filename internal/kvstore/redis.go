package kvstore

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Les paniers persistent 30 jours, comme côté boutique
const cartTTL = 30 * 24 * time.Hour

type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// ConnectRedis initialise la connexion Redis depuis l'environnement.
// Renvoie une erreur si REDIS_HOST n'est pas configuré — l'appelant
// décide alors de se replier sur le MemoryStore.
func ConnectRedis() (*RedisStore, error) {
	redisHost := os.Getenv("REDIS_HOST")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		return nil, fmt.Errorf("REDIS_HOST non configuré")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("impossible de se connecter à Redis: %v", err)
	}

	log.Println("✅ Redis connecté avec succès")
	return &RedisStore{client: client, ctx: ctx}, nil
}

// Client expose le client brut (pub/sub, rate limit)
func (r *RedisStore) Client() *redis.Client {
	return r.client
}

func (r *RedisStore) Get(key string) (string, bool, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisStore) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, cartTTL).Err()
}

func (r *RedisStore) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *RedisStore) Keys(prefix string) ([]string, error) {
	return r.client.Keys(r.ctx, prefix+"*").Result()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
