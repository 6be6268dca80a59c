package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"hrstore/internal/domain/attendance"
	"hrstore/internal/domain/audit"
	"hrstore/internal/domain/biometric"
	"hrstore/internal/domain/department"
	"hrstore/internal/domain/employee"
	"hrstore/internal/domain/leave"
	"hrstore/internal/domain/payroll"
	"hrstore/internal/domain/settings"
	"hrstore/internal/platform/config"
	"hrstore/internal/platform/db"
	"hrstore/internal/platform/metrics"
	"hrstore/internal/transport/http/api"
	attendancehandler "hrstore/internal/transport/http/handlers/attendance"
	audithandler "hrstore/internal/transport/http/handlers/audit"
	biometrichandler "hrstore/internal/transport/http/handlers/biometric"
	departmenthandler "hrstore/internal/transport/http/handlers/department"
	employeehandler "hrstore/internal/transport/http/handlers/employee"
	leavehandler "hrstore/internal/transport/http/handlers/leave"
	payrollhandler "hrstore/internal/transport/http/handlers/payroll"
	settingshandler "hrstore/internal/transport/http/handlers/settings"
	"hrstore/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	settingsStore := settings.NewStore(pool)
	provider := settings.NewProvider(settingsStore)
	auditSvc := audit.New(pool)

	departmentStore := department.NewStore(pool)
	employeeStore := employee.NewStore(pool, employee.Defaults{
		LeaveBalance: provider.DefaultLeaveBalances,
	})
	attendanceStore := attendance.NewStore(pool)
	leaveStore := leave.NewStore(pool)
	payrollStore := payroll.NewStore(pool)
	renderer := payroll.NewSlipRenderer(cfg.SlipStorageDir)
	biometricStore := biometric.NewStore(pool)

	reconciler := biometric.NewReconciler(biometricStore, employeeStore, attendanceStore,
		cfg.ReconcileInterval, cfg.ReconcileBatchSize)
	reconciler.Rules = provider.DayRules
	if cfg.ReconcileEnabled {
		reconciler.Start(ctx)
	}

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		departmenthandler.NewHandler(departmentStore, auditSvc).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore, auditSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceStore, provider, auditSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveStore, provider, auditSvc).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollStore, renderer, auditSvc).RegisterRoutes(r)
		biometrichandler.NewHandler(biometricStore, reconciler).RegisterRoutes(r)
		settingshandler.NewHandler(settingsStore, auditSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	log.Printf("hrstore listening on %s (%s)", cfg.Addr, cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
