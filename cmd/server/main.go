package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"furg/internal/auth"
	"furg/internal/config"
	"furg/internal/database"
	"furg/internal/demo"
	"furg/internal/handlers"
	"furg/internal/middleware"
	"furg/internal/repository"
	"furg/internal/services"
)

// App holds the application dependencies.
type App struct {
	config            *config.Config
	db                *database.DB
	router            *chi.Mux
	authMiddleware    *middleware.AuthMiddleware
	authHandler       *handlers.AuthHandler
	accountHandler    *handlers.AccountHandler
	budgetHandler     *handlers.BudgetHandler
	wishlistHandler   *handlers.WishlistHandler
	dealHandler       *handlers.DealHandler
	projectionHandler *handlers.ProjectionHandler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if cfg.DemoMode {
		seeder := demo.NewSeeder(db)
		if err := seeder.SeedIfEmpty(); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	dealRepo := repository.NewDealRepository(db)

	// Services
	projectionService := services.NewProjectionService(accountRepo, budgetRepo, wishlistRepo, snapshotRepo, cfg.Engine)
	dealService := services.NewDealService(dealRepo, wishlistRepo, cfg.Engine.DealMatchThreshold)

	// Sessions
	sessionDuration := time.Duration(cfg.Session.MaxAgeHours) * time.Hour
	sessionManager := auth.NewSessionManager(db).WithDuration(sessionDuration)
	cookieMaxAge := int(sessionDuration.Seconds())

	startMaintenance(sessionManager, dealRepo, snapshotRepo)

	app := &App{
		config:            cfg,
		db:                db,
		authMiddleware:    middleware.NewAuthMiddleware(sessionManager, userRepo),
		authHandler:       handlers.NewAuthHandler(userRepo, sessionManager, cookieMaxAge),
		accountHandler:    handlers.NewAccountHandler(accountRepo, snapshotRepo),
		budgetHandler:     handlers.NewBudgetHandler(budgetRepo),
		wishlistHandler:   handlers.NewWishlistHandler(wishlistRepo),
		dealHandler:       handlers.NewDealHandler(dealRepo, dealService),
		projectionHandler: handlers.NewProjectionHandler(projectionService),
	}
	app.setupRouter()

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://%s", cfg.Server.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func (app *App) setupRouter() {
	r := chi.NewRouter()

	// Chi middleware (aliased as chimw to avoid conflict with our middleware package)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Compress(5))

	r.Use(middleware.SecurityHeaders)
	r.Use(app.authMiddleware.LoadUser)

	r.Get("/health", app.handleHealth)

	// Auth routes, rate limited against brute force.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LimitAuth)
		r.Post("/api/auth/register", app.authHandler.Register)
		r.Post("/api/auth/login", app.authHandler.Login)
	})
	r.Post("/api/auth/logout", app.authHandler.Logout)

	// Protected API routes.
	r.Group(func(r chi.Router) {
		r.Use(app.authMiddleware.RequireAuth)

		r.Get("/api/auth/me", app.authHandler.Me)

		// Accounts
		r.Get("/api/accounts", app.accountHandler.List)
		r.Post("/api/accounts", app.accountHandler.Create)
		r.Get("/api/accounts/{id}", app.accountHandler.Get)
		r.Put("/api/accounts/{id}", app.accountHandler.Update)
		r.Delete("/api/accounts/{id}", app.accountHandler.Delete)
		r.Put("/api/accounts/{id}/balance", app.accountHandler.SyncBalance)
		r.Put("/api/accounts/{id}/loan", app.accountHandler.PutLoanDetails)
		r.Put("/api/accounts/{id}/credit-card", app.accountHandler.PutCreditCardDetails)
		r.Put("/api/accounts/{id}/property", app.accountHandler.PutPropertyDetails)
		r.Post("/api/accounts/{id}/valuations", app.accountHandler.AddValuation)

		// Budget
		r.Get("/api/budget", app.budgetHandler.Get)
		r.Put("/api/budget", app.budgetHandler.Put)

		// Wishlist
		r.Get("/api/wishlist", app.wishlistHandler.List)
		r.Post("/api/wishlist", app.wishlistHandler.Create)
		r.Put("/api/wishlist/{id}", app.wishlistHandler.Update)
		r.Delete("/api/wishlist/{id}", app.wishlistHandler.Delete)

		// Deals
		r.Get("/api/deals", app.dealHandler.List)
		r.Post("/api/deals", app.dealHandler.Create)
		r.Delete("/api/deals/{id}", app.dealHandler.Delete)
		r.Get("/api/deals/matches", app.dealHandler.Matches)

		// Projections (read-only)
		r.Get("/api/projections/overview", app.projectionHandler.Overview)
		r.Get("/api/projections/networth", app.projectionHandler.NetWorth)
		r.Get("/api/projections/purchases", app.projectionHandler.Purchases)
		r.Get("/api/projections/debt", app.projectionHandler.Debt)
		r.Get("/api/projections/rebalance", app.projectionHandler.Rebalance)
		r.Get("/api/projections/allocation", app.projectionHandler.Allocation)
		r.Get("/api/projections/insights", app.projectionHandler.Insights)
	})

	app.router = r
}

// snapshotRetention bounds how far back balance history is kept.
const snapshotRetention = 5 * 365 * 24 * time.Hour

// startMaintenance prunes expired sessions, expired deals and old balance
// snapshots in the background.
func startMaintenance(sm *auth.SessionManager, dealRepo *repository.DealRepository, snapshotRepo *repository.SnapshotRepository) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := sm.CleanExpired(); err != nil {
				log.Printf("Session cleanup failed: %v", err)
			} else if n > 0 {
				log.Printf("Removed %d expired sessions", n)
			}
			if n, err := dealRepo.DeleteExpired(time.Now()); err != nil {
				log.Printf("Deal cleanup failed: %v", err)
			} else if n > 0 {
				log.Printf("Removed %d expired deals", n)
			}
			if n, err := snapshotRepo.DeleteOlderThan(time.Now().Add(-snapshotRetention)); err != nil {
				log.Printf("Snapshot cleanup failed: %v", err)
			} else if n > 0 {
				log.Printf("Pruned %d old balance snapshots", n)
			}
		}
	}()
}

// handleHealth returns the server health status.
func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}
