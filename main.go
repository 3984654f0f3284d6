// main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers"
	"github.com/AI-Template-SDK/brand-visibility/internal/repositories"
	"github.com/AI-Template-SDK/brand-visibility/services"
	"github.com/AI-Template-SDK/brand-visibility/workflows"
	"github.com/google/uuid"
	"github.com/inngest/inngestgo"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"
)

// openDatabase prefers an embedded sqlite file when SQLITE_PATH is set
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.SQLitePath != "" {
		return repositories.OpenSQLite(ctx, cfg.SQLitePath)
	}

	db, err := repositories.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("dev.env"); err != nil {
			log.Printf("Note: No .env or dev.env file loaded: %v", err)
		} else {
			log.Printf("Loaded dev.env file for local development")
		}
	} else {
		log.Printf("Loaded .env file")
	}

	cfg := config.Load()

	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Port: %s", cfg.Port)
	if cfg.Database.SQLitePath != "" {
		log.Printf("Database: sqlite (%s)", cfg.Database.SQLitePath)
	} else {
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.Name)
	}

	for name, key := range map[string]string{
		"OpenAI":     cfg.OpenAIAPIKey,
		"Anthropic":  cfg.AnthropicAPIKey,
		"Perplexity": cfg.PerplexityAPIKey,
	} {
		if key == "" {
			log.Printf("WARNING: %s API key not loaded!", name)
		} else {
			log.Printf("%s API key loaded (length: %d)", name, len(key))
		}
	}

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Printf("Successfully connected to database")

	repoManager := services.NewRepositoryManager(db)
	log.Printf("Repository manager initialized")

	if cfg.Environment == "development" || cfg.Environment == "" {
		os.Unsetenv("INNGEST_SIGNING_KEY")
		cfg.InngestSigningKey = ""
		log.Printf("Running in development mode - signing key verification disabled")
	}

	log.Println("Attempting to initialize Qdrant client...")
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Qdrant.Host,
		Port: cfg.Qdrant.Port,
	})
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	defer qdrantClient.Close()

	log.Println("Attempting to initialize Typesense client...")
	typesenseClient := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("http://%s:%d", cfg.Typesense.Host, cfg.Typesense.Port)),
		typesense.WithAPIKey(cfg.Typesense.APIKey),
	)

	analyzer, err := cfg.NewAnalyzer()
	if err != nil {
		log.Fatalf("Failed to build mention analyzer: %v", err)
	}

	costService := services.NewCostService()
	platforms := providers.NewPlatforms(cfg, costService)
	log.Printf("%d AI platforms configured", len(platforms))

	metrics := services.NewMetrics()
	limiter := services.NewPlatformLimiter(cfg.Search.RatePerSecond, cfg.Search.Burst)
	cache := services.NewSearchCache(cfg.Search.CacheTTL)

	searchService := services.NewAISearchService(cfg, platforms, analyzer, limiter, cache, metrics)
	monitorService := services.NewBrandMonitorService(repoManager, searchService, metrics)
	competitorService := services.NewCompetitorAnalysisService(repoManager, searchService)
	analyticsService := services.NewAnalyticsService(repoManager)

	var embedder services.Embedder
	if cfg.OpenAIAPIKey != "" {
		embedder = services.NewOpenAIEmbedder(cfg)
	}
	indexService := services.NewIndexService(qdrantClient, typesenseClient, embedder, cfg)
	if err := indexService.EnsureCollections(ctx); err != nil {
		// Indexing is optional; monitoring keeps working without the stores
		log.Printf("WARNING: search collections not ready: %v", err)
	} else {
		log.Printf("Collections '%s' and '%s' are ready.", cfg.Qdrant.Collection, cfg.Typesense.Collection)
	}

	notifier := workflows.NewSlackNotifier(cfg.SlackWebhookURL)

	log.Printf("Creating Inngest client with AppID: brand-visibility, Environment: %s", cfg.Environment)
	client, err := inngestgo.NewClient(
		inngestgo.ClientOpts{
			AppID:    "brand-visibility",
			EventKey: inngestgo.StrPtr(cfg.InngestEventKey),
			Env:      inngestgo.StrPtr(cfg.Environment),
		},
	)
	if err != nil {
		log.Fatalf("Failed to create Inngest client: %v", err)
	}

	log.Printf("Initializing and registering workflows...")

	brandProcessor := workflows.NewBrandProcessor(repoManager, monitorService, analyticsService, indexService, notifier)
	brandProcessor.SetClient(client)
	brandProcessor.ProcessBrand()

	competitorProcessor := workflows.NewCompetitorProcessor(competitorService, analyticsService, notifier)
	competitorProcessor.SetClient(client)
	competitorProcessor.AnalyzeCompetitors()

	scheduledProcessor := workflows.NewScheduledProcessor(repoManager, analyticsService, notifier)
	scheduledProcessor.SetClient(client)
	scheduledProcessor.DailyBrandMonitor()
	scheduledProcessor.WeeklyCompetitorSweep()
	scheduledProcessor.WeeklyVisibilityDigest()

	log.Printf("All processors initialized and functions registered")

	h := client.Serve()
	mux := http.NewServeMux()
	mux.Handle("/api/inngest", h)
	mux.Handle("/metrics", metrics.Handler())

	// Root endpoint for ALB health check
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"service": "brand-visibility", "status": "running"})
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/test/trigger-brand", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		brandID, err := uuid.Parse(r.URL.Query().Get("brand_id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "brand_id must be a UUID"})
			return
		}

		evt := workflows.NewBrandMonitorEvent(brandID, "manual_test")
		if r.URL.Query().Get("pipeline") == "competitors" {
			evt = workflows.NewCompetitorAnalyzeEvent(brandID, "manual_test")
		}
		result, err := client.Send(r.Context(), evt)
		if err != nil {
			log.Printf("Failed to send test event: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("Failed to send event: %v", err)})
			return
		}
		log.Printf("Test event sent successfully: %+v", result)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "success",
			"message":   fmt.Sprintf("%s sent for brand %s", evt.Name, brandID),
			"event_ids": []string{result},
		})
	})

	port := cfg.Port
	log.Printf("Starting Brand Visibility service on port %s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}
