package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/starlines/starlines/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultConnectionString = "mongodb://localhost:27017/"
const defaultDatabase = "starlines"

func Connect() error {
	connectionString := defaultConnectionString
	dbName := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["STARLINES_MONGODB_CONNECTION"] != "" {
		connectionString = env["STARLINES_MONGODB_CONNECTION"]
	}

	if env["STARLINES_MONGODB_DATABASE"] != "" {
		dbName = env["STARLINES_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return err
	}

	createIndexes()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

func createIndexes() {
	reservations := GetCollection("reservations")

	_, err := reservations.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.M{"order_id": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.M{"status": 1},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create reservation indexes")
	}
}
