// Command gurujee-admin runs maintenance jobs against the directory database:
// index rebuilds, bulk status changes, slug backfills, seeding and sitemap export.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/app"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/events"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/storage"
)

func main() {
	if err := newRootCmd(config.LoadConfig, openMongo).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openMongo connects to the configured database only; jobs never touch Redis, MinIO or NATS.
func openMongo(ctx context.Context, cfg *config.Config) (*app.Deps, error) {
	if cfg.MongoDB.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI is not set")
	}
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 3)
	if err != nil {
		return nil, err
	}
	return &app.Deps{
		Mongo:  client,
		DB:     client.Database(cfg.MongoDB.Database),
		Store:  storage.NewMemoryStorage(cfg.Site.BaseURL),
		Events: events.Noop{},
	}, nil
}
