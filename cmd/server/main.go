package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/atmnet/backend/docs"
	"github.com/atmnet/backend/internal/config"
	"github.com/atmnet/backend/internal/database"
	"github.com/atmnet/backend/internal/handlers"
	"github.com/atmnet/backend/internal/hsm"
	mW "github.com/atmnet/backend/internal/middleware"
	"github.com/atmnet/backend/internal/rates"
	"github.com/atmnet/backend/internal/repository/postgres"
	"github.com/atmnet/backend/internal/services"
	"github.com/atmnet/backend/internal/token"
)

// @title ATM Network Backend API
// @version 1.0
// @description Card-present ATM transactions: login, withdraw, deposit, balance inquiry and currency conversion
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	config.Init()
	cfg := config.Load()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port

	// Initialize storage
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	customers := postgres.NewCustomerRepository(db)
	accounts := postgres.NewAccountRepository(db)
	atms := postgres.NewATMRepository(db)
	journal := postgres.NewJournalRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := initRates(ctx, cfg.Rates, redisClient)

	var metrics services.MetricsCollector = services.NoopMetrics{}
	var promMetrics *services.PrometheusMetrics
	if cfg.Server.MetricsEnabled {
		promMetrics = services.NewPrometheusMetrics()
		metrics = promMetrics
	}

	hasher := hsm.NewPINHasher(hsm.Argon2Params(cfg.Argon2))
	signer := token.NewJWTSigner(cfg.Token.SecretKey, cfg.Token.TTL, cfg.Token.Issuer)
	sessions := services.NewSessionAuthority(customers, hasher, signer)

	processor := services.NewTransactionProcessor(services.Dependencies{
		Sessions:  sessions,
		Ledger:    services.NewAccountLedger(accounts, customers),
		ATMs:      services.NewATMInventory(atms, metrics),
		Converter: services.NewCurrencyConverter(cfg.Processor.FeeRate),
		Rates:     provider,
		Journal:   journal,
		Auditor:   hsm.NewAuditLogger(),
		Metrics:   metrics,
	}, cfg.Processor)

	transactionHandler := handlers.NewTransactionHandler(processor)
	accountHandler := handlers.NewAccountHandler(processor)
	receiptHandler := handlers.NewReceiptHandler(processor, services.NewReceiptService(redisClient, services.DefaultReceiptTTL))

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{handlers.SessionTokenHeader, "X-Receipt-Code"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		if _, err := provider.Current(); err != nil {
			status = "degraded"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	if promMetrics != nil {
		r.Handle("/metrics", promMetrics.Handler())
	}

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/transactions/login", transactionHandler.Login)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware(sessions))

			r.Post("/transactions/withdraw", transactionHandler.Withdraw)
			r.Post("/transactions/deposit", transactionHandler.Deposit)
			r.Post("/transactions/balance", transactionHandler.Balance)
			r.Post("/transactions/convert", transactionHandler.Convert)
			r.Get("/transactions/{txId}/receipt", receiptHandler.GetReceipt)
			r.Post("/receipts/verify", receiptHandler.VerifyReceipt)

			r.Get("/accounts/{customerId}/currency", accountHandler.Currencies)
			r.Get("/accounts/{customerId}/accountType/{currency}", accountHandler.AccountTypes)
		})
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}

// initRates installs the freshest snapshot available at start: Redis, then
// the local file. With an API key the refresher keeps it current.
func initRates(ctx context.Context, cfg config.RatesConfig, redisClient *redis.Client) *rates.Provider {
	provider := rates.NewProvider(cfg.Currencies...)

	var store rates.Store
	if redisClient != nil {
		store = rates.NewRedisStore(redisClient)
	}
	refresher := rates.NewRefresher(rates.NewHTTPFetcher(cfg.APIURL, cfg.APIKey), store, provider, rates.RefresherConfig{
		Base:       cfg.BaseCurrency,
		Currencies: cfg.Currencies,
		Interval:   cfg.RefreshInterval,
	})

	if err := refresher.Bootstrap(ctx); err != nil {
		log.Printf("[RATES] No snapshot in Redis (%v), loading %s", err, cfg.FilePath)
		snapshot, err := rates.LoadFile(cfg.FilePath)
		if err != nil {
			log.Printf("[RATES] Failed to load rate file: %v", err)
		} else if err := provider.Replace(snapshot); err != nil {
			log.Printf("[RATES] Rejected rate file: %v", err)
		}
	}

	if cfg.APIKey != "" {
		go refresher.Run(ctx)
	} else {
		log.Println("[RATES] API_KEY not set, rates will not refresh")
	}
	return provider
}
