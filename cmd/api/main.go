package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/finsight-app/finsight/internal/api/handlers"
	"github.com/finsight-app/finsight/internal/api/middleware"
	"github.com/finsight-app/finsight/internal/config"
	"github.com/finsight-app/finsight/internal/infra/bigquery"
	"github.com/finsight-app/finsight/internal/ingest"
	"github.com/finsight-app/finsight/internal/insight"
	"github.com/finsight-app/finsight/internal/logger"
	"github.com/finsight-app/finsight/internal/reset"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	flag.Parse()

	log := logger.New()

	if err := cfg.RequireStore(); err != nil {
		log.Fatal().Err(err).Msg("Store is not configured")
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("No Gemini API key configured - report generation will fail until GEMINI_API_KEY is set")
	}
	if cfg.IngestWebhookURL == "" {
		log.Warn().Msg("No ingestion webhook configured - uploads will fail until INGEST_WEBHOOK_URL is set")
	}
	if cfg.GCSBucket == "" {
		log.Warn().Msg("No GCS bucket configured - raw upload archival is disabled")
	}

	ctx := context.Background()

	storeClient, err := bigquery.NewClient(ctx, cfg.GCPProject, cfg.BQDataset)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create store client")
	}
	defer storeClient.Close()

	// Services
	summarizer := insight.NewGeminiSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel)
	generator := insight.NewGenerator(storeClient, storeClient, summarizer, log)
	resetController := reset.NewController(storeClient, log)

	var archiver ingest.Archiver
	if cfg.GCSBucket != "" {
		archiver = ingest.NewGCSArchiver(cfg.GCSBucket)
	}
	proxy := ingest.NewProxy(cfg.IngestWebhookURL, &http.Client{Timeout: 60 * time.Second}, archiver, log)

	// Handlers
	reportsHandler := handlers.NewReportsHandler(generator, storeClient, log)
	resetHandler := handlers.NewResetHandler(resetController, log)
	uploadHandler := handlers.NewUploadHandler(proxy, log)
	transactionsHandler := handlers.NewTransactionsHandler(storeClient, log)
	logsHandler := handlers.NewLogsHandler(storeClient, log)

	// Router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/generate-report", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			reportsHandler.GenerateReport(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			resetHandler.Reset(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			uploadHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/reports", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			reportsHandler.ListReports(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
			if id == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
				return
			}
			transactionsHandler.DeleteTransaction(w, r, id)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.Stats(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/logs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			logsHandler.ListLogs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Middleware chain
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
