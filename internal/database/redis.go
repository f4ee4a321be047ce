package database

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// RedisConfig holds the cache connection settings for rate snapshots and receipts.
type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	PingTimeout time.Duration
}

// Addr joins host and port.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// GetRedisConfig returns Redis configuration with defaults
func GetRedisConfig() *RedisConfig {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ping_timeout", 5*time.Second)

	return &RedisConfig{
		Host:        viper.GetString("redis.host"),
		Port:        viper.GetString("redis.port"),
		Password:    viper.GetString("redis.password"),
		DB:          viper.GetInt("redis.db"),
		PingTimeout: viper.GetDuration("redis.ping_timeout"),
	}
}

// InitRedis connects to Redis. A failed ping returns nil; rates then come
// from the local file and receipts cannot be verified.
func InitRedis() *redis.Client {
	cfg := GetRedisConfig()
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, continuing without it: %v", cfg.Addr(), err)
		rdb.Close()
		return nil
	}

	log.Printf("Redis connection established (%s, db %d)", cfg.Addr(), cfg.DB)
	return rdb
}
