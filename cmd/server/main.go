package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"exhibit/internal/admissibility"
	admissibilityhandler "exhibit/internal/admissibility/handler"
	admissibilitymetrics "exhibit/internal/admissibility/metrics"
	"exhibit/internal/audit"
	"exhibit/internal/claims"
	claimshandler "exhibit/internal/claims/handler"
	"exhibit/internal/custody"
	custodyhandler "exhibit/internal/custody/handler"
	"exhibit/internal/document"
	"exhibit/internal/facts"
	factshandler "exhibit/internal/facts/handler"
	factsmetrics "exhibit/internal/facts/metrics"
	httpapi "exhibit/internal/http"
	"exhibit/internal/platform/config"
	"exhibit/internal/platform/httpserver"
	"exhibit/internal/platform/logger"
	"exhibit/internal/platform/postgres"
	"exhibit/internal/rules"
	"exhibit/internal/seed"
	"exhibit/internal/sourceauth"
	sourceauthhandler "exhibit/internal/sourceauth/handler"
	"exhibit/migrations"
)

// stores groups every persistence dependency so wiring stays in one place.
type stores struct {
	documents  document.Reader
	rules      rules.Store
	sources    sourceauth.Store
	claims     claims.CatalogStore
	analyses   claims.AnalysisStore
	custody    custody.Store
	facts      facts.Store
	audit      audit.Store
	health     httpapi.HealthChecker
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	st, err := buildStores(ctx, cfg)
	if err != nil {
		log.Error("store initialization failed", "error", err)
		os.Exit(1)
	}

	if cfg.SeedOnStart {
		if err := seed.Load(ctx, st.rules, st.sources, st.claims); err != nil {
			log.Error("seed load failed", "error", err)
			os.Exit(1)
		}
	}

	registry := rules.NewRegistry(st.rules, cfg.RuleCacheTTL)
	custodyLedger := custody.NewLedger(st.custody, log)
	sourceService := sourceauth.NewService(st.sources)
	analyzer := claims.NewAnalyzer(st.claims, st.analyses, st.documents, claims.NewTokenMatcher(), log)
	factLedger := facts.NewLedger(st.facts, facts.NewNegationDetector(), log, factsmetrics.New())

	engine := admissibility.NewEngine(
		st.documents,
		registry,
		admissibility.NewEvaluatorRegistry(),
		custodyLedger,
		sourceService,
		analyzer,
		st.audit,
		cfg.EvaluatorFailurePolicy,
		log,
		admissibilitymetrics.New(),
	)

	router := httpapi.NewRouter(st.health,
		admissibilityhandler.New(engine, log),
		custodyhandler.New(custodyLedger, log),
		claimshandler.New(analyzer, log),
		sourceauthhandler.New(sourceService, log),
		factshandler.New(factLedger, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting exhibit gatekeeper", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStores selects Postgres-backed stores when a database URL is
// configured, in-memory stores otherwise (development mode).
func buildStores(ctx context.Context, cfg config.Server) (*stores, error) {
	if cfg.DatabaseURL == "" {
		return &stores{
			documents: document.NewInMemoryStore(),
			rules:     rules.NewInMemoryStore(),
			sources:   sourceauth.NewInMemoryStore(),
			claims:    claims.NewInMemoryCatalogStore(),
			analyses:  claims.NewInMemoryAnalysisStore(),
			custody:   custody.NewInMemoryStore(),
			facts:     facts.NewInMemoryStore(),
			audit:     audit.NewInMemoryStore(),
			health:    nil,
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrations.Apply(ctx, db); err != nil {
		return nil, err
	}
	return &stores{
		documents: document.NewPostgres(db),
		rules:     rules.NewPostgres(db),
		sources:   sourceauth.NewPostgres(db),
		claims:    claims.NewPostgresCatalog(db),
		analyses:  claims.NewPostgresAnalysis(db),
		custody:   custody.NewPostgres(db),
		facts:     facts.NewPostgres(db),
		audit:     audit.NewPostgres(db),
		health:    healthCheck(db),
	}, nil
}

func healthCheck(db *sql.DB) httpapi.HealthChecker {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
