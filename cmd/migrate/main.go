package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/config"
	"github.com/hanabi-bot/hanabi/hanabi/database"
	"github.com/hanabi-bot/hanabi/hanabi/logger"
	"github.com/hanabi-bot/hanabi/hanabi/migration"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	path := flag.String("config", "config.toml", "path to config")
	batchSize := flag.Int("batch-size", config.MigrationBatchSize, "insert batch size")
	flag.Parse()

	cfg, err := hanabi.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to Postgres", slog.Any("error", err))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(-1)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		slog.Error("Failed to connect to MongoDB", slog.Any("error", err))
		os.Exit(-1)
	}
	defer mongoClient.Disconnect(ctx)

	migrator := migration.NewMigrator(db.BunDB(), mongoClient.Database(cfg.Mongo.Database), *batchSize)

	if err := migrator.MigrateAll(ctx); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Migration completed successfully!")
}
