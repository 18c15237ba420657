package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripdesk-backend/internal/config"
	"tripdesk-backend/internal/directory"
	"tripdesk-backend/internal/handlers"
	"tripdesk-backend/internal/middleware"
	"tripdesk-backend/internal/services"
	"tripdesk-backend/internal/storage"
	"tripdesk-backend/internal/storage/postgres"
	"tripdesk-backend/internal/storage/sqlite"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to storage
	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()
	log.Info().Str("driver", cfg.Database.Driver).Msg("Storage ready")

	// Initialize services
	resolver := directory.NewResolver(store, cfg.Directory.MaxPages)
	tripService := services.NewTripService(store, resolver)
	activityService := services.NewActivityService(store)
	budgetService := services.NewBudgetService(store)
	expenseService := services.NewExpenseService(store)
	taskService := services.NewTaskService(store)
	memberService := services.NewMemberService(store, resolver)

	// Initialize handlers
	tripHandler := handlers.NewTripHandler(tripService)
	activityHandler := handlers.NewActivityHandler(activityService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	taskHandler := handlers.NewTaskHandler(taskService)
	memberHandler := handlers.NewMemberHandler(memberService, tripService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public share surface
		r.Get("/share/{share_id}", memberHandler.SharedPreview)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Auth.JWTSecret))

			r.Post("/trips", tripHandler.CreateTrip)
			r.Get("/trips", tripHandler.ListTrips)
			r.Post("/migrations/wizard-budget", budgetHandler.MigrateWizardBudgets)

			r.Route("/trips/{trip_id}", func(r chi.Router) {
				r.Get("/", tripHandler.GetTrip)
				r.Patch("/", tripHandler.UpdateTrip)
				r.Delete("/", tripHandler.DeleteTrip)

				r.Get("/days", activityHandler.ListDays)
				r.Post("/days", activityHandler.EnsureDay)

				r.Post("/activities", activityHandler.CreateActivity)
				r.Post("/activities/reorder", activityHandler.Reorder)
				r.Post("/activities/assign-day", activityHandler.AssignDay)
				r.Patch("/activities/{activity_id}", activityHandler.UpdateActivity)
				r.Delete("/activities/{activity_id}", activityHandler.DeleteActivity)

				r.Get("/budget", budgetHandler.GetBudget)
				r.Put("/budget", budgetHandler.UpdateBudget)

				r.Post("/expenses", expenseHandler.CreateExpense)
				r.Get("/expenses", expenseHandler.ListExpenses)
				r.Delete("/expenses/{expense_id}", expenseHandler.DeleteExpense)

				r.Post("/tasks", taskHandler.CreateTask)
				r.Get("/tasks", taskHandler.ListTasks)
				r.Patch("/tasks/{task_id}", taskHandler.UpdateTask)
				r.Delete("/tasks/{task_id}", taskHandler.DeleteTask)

				r.Post("/members", memberHandler.AddMember)
				r.Get("/members", memberHandler.ListMembers)
				r.Patch("/members/{user_id}", memberHandler.UpdateMember)
				r.Delete("/members/{user_id}", memberHandler.RemoveMember)

				r.Post("/share-links", memberHandler.CreateShareLink)
				r.Get("/share-links", memberHandler.ListShareLinks)
			})
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStore picks the storage backend from configuration
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.New(context.Background(), cfg.Database.DSN())
	case "sqlite":
		return sqlite.New(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
