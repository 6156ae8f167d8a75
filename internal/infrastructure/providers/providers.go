package providers

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/regulaworks/vendorcomply/internal/config"
	"github.com/regulaworks/vendorcomply/internal/infrastructure/database"
)

// NewDatabase opens a Postgres connection using the configured DSN.
func NewDatabase(conf config.Server) (*gorm.DB, error) {
	return database.NewPostgres(conf.PostgresDsn)
}

// MigrateDatabase applies migrations for the application models.
func MigrateDatabase(db *gorm.DB) error {
	return database.MigratePostgres(db)
}

// NewRedis creates the redis client backing notification pub/sub.
func NewRedis(conf config.Server) *redis.Client {
	return database.NewRedis(conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
}
