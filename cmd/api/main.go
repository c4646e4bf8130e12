package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fieldops.dev/internal/auth"
	"fieldops.dev/internal/config"
	"fieldops.dev/internal/httpapi"
	"fieldops.dev/internal/obs"
	"fieldops.dev/internal/rbac"
	"fieldops.dev/internal/tenant"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("FIELDOPS_PG_DSN is required: the membership store backs every non-public request")
	}

	verifier, err := auth.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer)
	if err != nil {
		log.Fatalf("configure token verifier: %v", err)
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	store := tenant.NewPGStore(db)
	public := httpapi.DefaultPublicMatcher()
	tenancy := httpapi.NewTenancy(
		public,
		auth.NewExtractor(verifier, cfg.SessionCookie),
		tenant.NewResolver(store),
		tenant.NewValidator(store, cfg.MembershipTimeout),
	)
	routeAuthz := httpapi.NewRouteAuthz(public, rbac.DefaultPolicy())

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, tenancy, routeAuthz, cfg.MaxBodyBytes)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting fieldops-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
