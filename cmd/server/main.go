package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/rpp-analyzer/internal/api"
	"github.com/ignite/rpp-analyzer/internal/config"
	"github.com/ignite/rpp-analyzer/internal/ingest"
	"github.com/ignite/rpp-analyzer/internal/pkg/logger"
	"github.com/ignite/rpp-analyzer/internal/rakuten"
	"github.com/ignite/rpp-analyzer/internal/session"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("╔════════════════════════════════════════════════════════════╗")
	log.Println("║  RPP Analyzer Server (cmd/server/main.go)                  ║")
	log.Println("║  Rakuten RPP keyword and product report reconciliation     ║")
	log.Println("╚════════════════════════════════════════════════════════════╝")

	// Load configuration
	configPath := os.Getenv("RPP_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to load config: %v", err)
		}
		log.Printf("[config] %s not found, using defaults", configPath)
		cfg = config.Default()
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logger.DEBUG)
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	// Wire the ingestion pipeline and session registry
	store := session.NewStore()
	cache := ingest.NewParseCache()
	loader := ingest.NewLoader(rakuten.KeyColumn, cfg.Ingest.SampleBytes, cache)
	handlers := api.NewHandlers(cfg, store, loader)
	server := api.NewServer(cfg, handlers)
	log.Printf("Upload limit %d MB, detection sample %d bytes", cfg.Ingest.MaxUploadMB, cfg.Ingest.SampleBytes)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized — server is ready")

	<-done
	log.Println("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
