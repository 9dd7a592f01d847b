package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swelljoe/dayplanner/internal/assistant"
	"github.com/swelljoe/dayplanner/internal/config"
	"github.com/swelljoe/dayplanner/internal/db"
	"github.com/swelljoe/dayplanner/internal/handlers"
	"github.com/swelljoe/dayplanner/internal/metrics"
	"github.com/swelljoe/dayplanner/internal/session"
	"github.com/swelljoe/dayplanner/internal/weather"
)

const (
	sessionMaxAge = 12 * time.Hour
	sweepInterval = 10 * time.Minute
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid TZ_NAME: %v", err)
	}

	collector := metrics.NewCollector("dayplanner", prometheus.DefaultRegisterer)

	// Initialize database connection
	var cache weather.Cache
	var health handlers.Database
	database, err := db.NewDB(cfg.DBPath)
	if err != nil {
		log.Printf("Warning: Database connection failed: %v", err)
		log.Println("Continuing without forecast cache...")
	} else {
		defer database.Close()
		cache = database
		health = database
		log.Println("Database connected successfully")
	}

	client := weather.NewClient(cfg.OWMKey, cfg.OWMRPS, cfg.OWMBurst)
	if cfg.OWMBaseURL != "" {
		client.BaseURL = cfg.OWMBaseURL
	}
	if cfg.OWMProBaseURL != "" {
		client.ProBaseURL = cfg.OWMProBaseURL
	}
	wService := weather.NewService(client, cache, cfg.CacheTTL, collector)

	sessions := session.NewStore()
	h := handlers.New(health, wService, sessions).
		WithMetrics(collector).
		WithLocation(loc)
	if cfg.AssistantURL != "" {
		ai := assistant.NewClient(cfg.AssistantURL, cfg.AssistantKey, cfg.AssistantTimeout)
		h.WithAssistant(ai, handlers.AssistantIDs{
			Planner:    cfg.PlannerAssistantID,
			Reflection: cfg.ReflectionAssistantID,
			Helper:     cfg.HelperAssistantID,
		})
	} else {
		log.Println("ASSISTANT_URL not set, planning, reflection and help are disabled")
	}

	// Setup routes
	router := mux.NewRouter()
	fs := http.FileServer(http.Dir("static"))
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
	router.Handle("/metrics", promhttp.Handler())
	h.Routes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      gorillahandlers.LoggingHandler(os.Stdout, router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go maintain(ctx, sessions, database, collector)

	go func() {
		log.Printf("Server starting on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// maintain drops idle sessions and expired cache rows until ctx is done
func maintain(ctx context.Context, sessions *session.Store, database *db.DB, collector *metrics.Collector) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(sessionMaxAge); n > 0 {
				log.Printf("Dropped %d idle sessions", n)
			}
			collector.SetActiveSessions(sessions.Len())

			if database == nil {
				continue
			}
			if n, err := database.PurgeExpired(); err != nil {
				log.Printf("Cache purge error: %v", err)
			} else if n > 0 {
				log.Printf("Purged %d expired cache rows", n)
			}
		}
	}
}
