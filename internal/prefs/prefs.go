// Package prefs stores small per-user values such as the last selected
// society.
package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/codr1/Gatehouse/internal/config"
	"github.com/codr1/Gatehouse/internal/db"
)

// KeySelectedSociety holds the society id a user last switched to.
const KeySelectedSociety = "selected_society_id"

type Store interface {
	// Get returns the stored value and whether it exists.
	Get(ctx context.Context, userID, key string) (string, bool, error)
	Set(ctx context.Context, userID, key, value string) error
	Delete(ctx context.Context, userID, key string) error
}

// NewFromConfig returns the store selected by the preferences driver.
func NewFromConfig(ctx context.Context, cfg *config.Config, database *db.DB) (Store, error) {
	switch cfg.Preferences.Driver {
	case "", "sqlite":
		return NewSQLStore(database), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Preferences.RedisAddr,
			Password: cfg.Preferences.RedisPassword,
			DB:       cfg.Preferences.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unsupported preferences driver: %s", cfg.Preferences.Driver)
	}
}
