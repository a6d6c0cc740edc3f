package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"statscope/adapters/postgres"
	"statscope/api"
	"statscope/internal/config"
	"statscope/internal/errors"
	"statscope/internal/testkit"
	"statscope/ports"
)

func main() {
	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	reports, err := initReportStore(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize report store: %v", err)
	}

	app := api.NewApp(appConfig.Analyzer, reports)

	addr := ":" + appConfig.Server.Port
	log.Printf("Statscope API listening on %s", addr)
	server := &http.Server{
		Addr:         addr,
		Handler:      app.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initReportStore connects to Postgres when configured, otherwise falls
// back to the in-memory repository.
func initReportStore(appConfig *config.Config) (ports.ReportRepository, error) {
	if appConfig.Database.URL == "" {
		log.Printf("DATABASE_URL not set, storing reports in memory")
		return testkit.NewInMemoryReportRepository(), nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return postgres.NewReportRepository(db), nil
}
