package config

import (
	"time"

	"stickynotes/pkg/db/redis"
)

// RedisConfig - настройки Redis.
type RedisConfig struct {
	Host      string        `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port      int           `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password  string        `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB        int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize  int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout   time.Duration `yaml:"timeout" env:"NOTES_REDIS_TIMEOUT" env-default:"3s"`
	KeyPrefix string        `yaml:"key_prefix" env:"NOTES_REDIS_KEY_PREFIX" env-default:"stickynotes:"`
}

// ClientConfig преобразует настройки в конфигурацию общего клиента.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
