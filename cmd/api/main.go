package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"lendledger/internal/auth"
	apphttp "lendledger/internal/http"
	"lendledger/internal/httpx"
	"lendledger/internal/ledger"
	"lendledger/internal/report"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	databaseDSN := os.Getenv("DB_DSN")
	jwtSecret := mustGetEnv("JWT_SECRET")

	var (
		store    ledger.Store
		reader   report.Reader
		accounts auth.AccountRepository
		dbPool   *pgxpool.Pool
	)

	if databaseDSN != "" {
		dbPool = mustOpenDB(databaseDSN)
		defer dbPool.Close()

		store = ledger.NewPostgresStore(dbPool, 3*time.Second)
		reader = report.NewPostgresReader(dbPool, 5*time.Second)
		accounts = auth.NewPostgresAccounts(dbPool, 3*time.Second)
	} else {
		log.Println("DB_DSN not set, running with the in-memory ledger")
		memStore := ledger.NewMemoryStore()
		memAccounts := auth.NewMemoryAccounts()
		bootstrapStaffAccount(memAccounts)

		store = memStore
		reader = report.NewMemoryReader(memStore)
		accounts = memAccounts
	}

	lendingService := ledger.NewService(store)
	authService := auth.NewService(accounts, jwtSecret, 12*time.Hour)

	handler := newRouter(routerDeps{
		lending:   apphttp.NewLendingHandler(lendingService),
		reports:   apphttp.NewReportHandler(reader),
		login:     apphttp.NewAuthHandler(authService),
		jwtSecret: jwtSecret,
		db:        dbPool,
	})

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

type routerDeps struct {
	lending   *apphttp.LendingHandler
	reports   *apphttp.ReportHandler
	login     *apphttp.AuthHandler
	jwtSecret string
	db        *pgxpool.Pool // nil in memory mode
}

func newRouter(deps routerDeps) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := deps.db.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("/auth/login", deps.login.Login)

	protected := httpx.AuthMiddleware(deps.jwtSecret)
	staffOnly := httpx.RequireRole(auth.RoleStaff)
	router.Handle("/loans", protected(staffOnly(http.HandlerFunc(deps.lending.Issue))))
	router.Handle("/loans/", protected(http.HandlerFunc(deps.lending.LoanByID)))
	router.Handle("/members/", protected(http.HandlerFunc(deps.reports.MemberLoans)))
	router.Handle("/reports/overdue", protected(http.HandlerFunc(deps.reports.Overdue)))
	router.Handle("/reports/top-books", protected(http.HandlerFunc(deps.reports.TopBooks)))
	router.Handle("/reports/fines", protected(http.HandlerFunc(deps.reports.FineTotals)))

	rateLimit := httpx.NewRateLimitMiddleware(20, 40)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware,
		httpx.AccessLogMiddleware,
		rateLimit.Middleware,
		httpx.RequestSizeLimitMiddleware(1<<20),
	)
}

// bootstrapStaffAccount seeds one STAFF login so the in-memory mode is
// usable without a seed run. Credentials come from the environment.
func bootstrapStaffAccount(accounts *auth.MemoryAccounts) {
	username := getEnv("STAFF_USERNAME", "desk")
	password := getEnv("STAFF_PASSWORD", "")
	if password == "" {
		log.Println("STAFF_PASSWORD not set, no staff account bootstrapped")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash bootstrap password: %v", err)
	}
	err = accounts.Create(context.Background(), auth.Account{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         auth.RoleStaff,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		log.Fatalf("cannot create bootstrap account: %v", err)
	}
	log.Printf("bootstrapped staff account %q", username)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustGetEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	log.Fatalf("missing required environment variable: %s", key)
	return ""
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
