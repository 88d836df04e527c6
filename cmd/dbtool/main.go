package main

import (
	"context"
	"hvac-dispatch-service/internal/adapters/repositories"
	"hvac-dispatch-service/internal/config"
	"hvac-dispatch-service/internal/platform/db"
	"hvac-dispatch-service/internal/platform/mongodb"
	"time"

	"github.com/sirupsen/logrus"
)

// dbtool prepares the stores: it creates the Postgres route schema and loads
// the seed file into MongoDB.
func main() {
	if !config.LoadDotEnv() {
		logrus.Info("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	mongoURI := config.Get("MONGO_URI", "")
	if databaseURL == "" && mongoURI == "" {
		logrus.Fatal("DATABASE_URL or MONGO_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if databaseURL != "" {
		initSchema(ctx, databaseURL)
	}

	if mongoURI != "" {
		seedPath := config.Get("SEED_PATH", "data/seeds/dispatch.json")
		seedMongo(ctx, mongoURI, config.Get("MONGO_DB", "hvac"), seedPath)
	}
}

func initSchema(ctx context.Context, databaseURL string) {
	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("open database failed")
	}
	defer sqlDB.Close()

	logrus.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		logrus.WithError(err).Fatal("schema initialization failed")
	}
	logrus.Info("Schema ready.")
}

func seedMongo(ctx context.Context, uri, database, seedPath string) {
	seed, err := repositories.LoadSeed(seedPath)
	if err != nil {
		logrus.WithError(err).Fatal("load seed failed")
	}

	client, err := mongodb.Connect(ctx, uri)
	if err != nil {
		logrus.WithError(err).Fatal("connect mongo failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	logrus.WithFields(logrus.Fields{
		"jobs":        len(seed.Jobs),
		"technicians": len(seed.Technicians),
	}).Info("Seeding database...")
	if err := repositories.SeedMongo(ctx, client.Database(database), seed); err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}
	logrus.Info("Seeding complete.")
}
