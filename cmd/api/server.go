package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blog-backend/internal/config"
	"blog-backend/internal/server"
	"blog-backend/pkg/container"
)

// Serve builds the container, starts the lifecycle and blocks until a
// signal arrives or the HTTP server fails, then awaits a full shutdown.
func Serve(cfg *config.Config) error {
	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	// ========================================
	// 2. SETUP ROUTER + LIFECYCLE
	// ========================================
	router := SetupRouter(appContainer)
	lifecycle := server.New(appContainer, router)

	// ========================================
	// 3. START (connect store, then listen)
	// ========================================
	if err := lifecycle.Start(context.Background(), cfg.App.Addr()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	log.Printf("🚀 Your app is listening on %s", lifecycle.Addr())

	// ========================================
	// 4. WAIT FOR SIGNAL OR SERVE FAILURE
	// ========================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
		log.Println("🛑 Shutting down server...")
	case err, ok := <-lifecycle.Errors():
		if ok {
			serveErr = fmt.Errorf("server failed: %w", err)
		}
	}

	// ========================================
	// 5. GRACEFUL SHUTDOWN
	// ========================================
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := lifecycle.Stop(shutdownCtx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
	return serveErr
}
