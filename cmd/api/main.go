package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, db := mustOpenStore(ctx, cfg)
	if db != nil {
		defer db.Close()
	}

	handler := newHandler(ctx, cfg, book.NewService(store), db)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("Starting server on %s driver=%s", cfg.Addr, cfg.DBDriver)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

// mustOpenStore returns the configured book store. The returned DB is nil for
// the in-memory driver.
func mustOpenStore(ctx context.Context, cfg config.Config) (book.Store, database.DB) {
	if cfg.DBDriver == config.DriverMemory {
		log.Println("using in-memory book store")
		return book.NewMemoryRepo(), nil
	}

	openCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	db, err := database.Open(openCtx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("cannot open database: %v", err)
	}
	log.Println("database connection OK")
	return book.NewPostgresRepo(db, cfg.DBTimeout), db
}
