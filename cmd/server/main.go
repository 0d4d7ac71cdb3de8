package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food-match-service/internal/adapters/memory"
	"food-match-service/internal/adapters/notify"
	"food-match-service/internal/adapters/repositories"
	"food-match-service/internal/adapters/seed"
	"food-match-service/internal/api"
	"food-match-service/internal/config"
	"food-match-service/internal/matching"
	"food-match-service/internal/platform/db"
	"food-match-service/internal/ports"
	"food-match-service/internal/routing"
	"food-match-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or memory, NATS or log) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

// run serves until SIGINT/SIGTERM, then shuts the server down and releases
// the store and notifier through the deferred closers.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore.Close()

	notifier, closeNotifier, err := openNotifier(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeNotifier.Close(); err != nil {
			log.Printf("close notifier: %v", err)
		}
	}()

	scorer, err := matching.NewEngine(cfg.Matching)
	if err != nil {
		return err
	}
	router, err := routing.NewEngine(cfg.Routing)
	if err != nil {
		return err
	}

	wf, err := services.NewWorkflow(services.WorkflowDeps{
		Store:    store,
		Scorer:   scorer,
		Router:   router,
		Notifier: notifier,
		MinScore: cfg.MinScore,
	})
	if err != nil {
		return err
	}

	handler := api.NewRouter(api.Deps{Service: wf, Scorer: scorer, Router: router})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Server listening addr=:%s strategy=%s min_score=%.2f", cfg.Port, router.StrategyName(), cfg.MinScore)
	return serve(ctx, srv, 10*time.Second)
}

// serve runs srv until it fails or ctx is cancelled, then drains in-flight
// requests for at most grace.
func serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openStore uses Postgres when DATABASE_URL is set and otherwise an
// in-memory store loaded from the seed file, for local runs.
func openStore(ctx context.Context, cfg *config.Config) (ports.MatchStore, io.Closer, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Using postgres store")
		return repositories.NewPostgresStore(conn), conn, nil
	}

	data, err := seed.Load(cfg.SeedPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open memory store: %w", err)
	}
	store := memory.NewStore()
	store.Load(data)

	log.Printf(
		"Using in-memory store seed=%s vehicles=%d donations=%d requests=%d",
		cfg.SeedPath, len(data.Vehicles), len(data.Donations), len(data.Requests),
	)
	return store, closerFunc(func() error { return nil }), nil
}

func openNotifier(cfg *config.Config) (ports.Notifier, io.Closer, error) {
	if cfg.NATSURL == "" {
		return notify.LogNotifier{}, closerFunc(func() error { return nil }), nil
	}

	n, nc, err := notify.Connect(cfg.NATSURL, cfg.NATSSubjectPrefix)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Publishing match events to nats prefix=%s", cfg.NATSSubjectPrefix)
	return n, closerFunc(func() error { return nc.Drain() }), nil
}
