package redis_client

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/zugtrip/zug/pkg/util"
)

var Client *redis.Client

// ErrNotConfigured is returned by Connect when no address is set
var ErrNotConfigured = errors.New("ZUG_REDIS_ADDRESS is not set")

const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect opens the redis connection used for caching backend lookups. Redis is optional:
// without ZUG_REDIS_ADDRESS it returns ErrNotConfigured and lookups are not cached.
func Connect() error {
	env := util.GetEnvironmentVariables()

	address := env["ZUG_REDIS_ADDRESS"]
	if address == "" {
		return ErrNotConfigured
	}

	password := util.GetEnvironmentString(env, "ZUG_REDIS_PASSWORD", defaultConnectionPassword)

	database, err := util.GetEnvironmentInt(env, "ZUG_REDIS_DATABASE", defaultDatabase)
	if err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	statusCmd := client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		return err
	}

	Client = client

	return nil
}
