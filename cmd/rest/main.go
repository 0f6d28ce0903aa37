package main

import (
	"context"
	"log"

	"doc-collab-be/internal/bootstrap"
	"doc-collab-be/internal/config"
	"doc-collab-be/internal/server"
	"doc-collab-be/internal/tracer"
	"doc-collab-be/pkg/database"
)

func main() {
	// 1. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer func() {
		if container.Publisher != nil {
			container.Publisher.Close()
		}
		_ = container.Logger.Sync()
	}()

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
