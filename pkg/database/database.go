package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zugtrip/zug/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

// ErrNotConfigured is returned by Connect when no connection string is set
var ErrNotConfigured = errors.New("ZUG_MONGODB_CONNECTION is not set")

const defaultMongoDatabase = "zug"

// Connect opens the MongoDB connection backing short links. The connection is optional:
// without ZUG_MONGODB_CONNECTION it returns ErrNotConfigured and the caller runs without it.
func Connect() error {
	env := util.GetEnvironmentVariables()

	connectionString := env["ZUG_MONGODB_CONNECTION"]
	if connectionString == "" {
		return ErrNotConfigured
	}

	dbName := util.GetEnvironmentString(env, "ZUG_MONGODB_DATABASE", defaultMongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	createIndexes()

	return nil
}

func IsConnected() bool {
	return MongoGlobalInstance != nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

func Disconnect() {
	if MongoGlobalInstance == nil {
		return
	}

	if err := MongoGlobalInstance.Client.Disconnect(context.Background()); err != nil {
		log.Error().Err(err).Msg("Disconnecting from MongoDB")
	}
}
