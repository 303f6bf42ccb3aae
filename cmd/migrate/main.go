package main

import (
	"context"
	"time"

	mongoMigration "fleetbook/internal/migrations/mongo"
	"fleetbook/pkg/config"
	"fleetbook/pkg/mongoclient"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job")

	client := mongoclient.Connect(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer mongoclient.Disconnect(cfg.Log, client, cfg.ShutdownTimeout)

	if err := mongoMigration.RunMigration(ctx, client, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migration completed successfully")
}
