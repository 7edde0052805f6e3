package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datasight/adapters/postgres"
	"datasight/app"
	"datasight/internal/api"
	"datasight/internal/config"
	"datasight/internal/hypothesis"
	"datasight/internal/profiling"
	"datasight/internal/visuals"
	"datasight/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var ledger ports.ReportLedger
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		ledger, err = postgres.NewReportLedger(db)
		if err != nil {
			log.Fatalf("Failed to initialize report ledger: %v", err)
		}
		log.Printf("Report persistence enabled")
	} else {
		log.Printf("DATABASE_URL not set, report persistence disabled")
	}

	analyzer := profiling.NewAnalyzerWithThresholds(cfg.Insight.Thresholds())
	generator := hypothesis.NewGeneratorWithCap(cfg.Insight.MaxHypotheses)
	tester := hypothesis.NewTester()
	deep := app.NewDeepInsightService(analyzer, generator, tester)

	registry := visuals.NewRegistry()
	visualGen := visuals.NewGeneratorWithConfig(registry, cfg.Insight.VisualsConfig())
	auto := app.NewAutoInsightService(visualGen)

	// No natural-language agent is wired in this binary; queries go
	// straight to the insight fallback chain.
	insights := app.NewInsightService(nil, deep, auto)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: api.NewServer(insights, ledger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
