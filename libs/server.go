package libs

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// GracefulShutdown starts the HTTP server and blocks until SIGINT/SIGTERM,
// then drains it within the given timeout. onShutdown hooks run after the
// server stops accepting connections (telemetry flush, worker stop).
func GracefulShutdown(server *http.Server, timeout time.Duration, onShutdown ...func()) {
	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	for _, hook := range onShutdown {
		hook()
	}

	log.Println("Server stopped")
}

// GracefulShutdownAll is the multi-server variant used by the backends
// binary, which hosts one listener per simulated subsystem.
func GracefulShutdownAll(servers []*http.Server, timeout time.Duration) {
	for _, server := range servers {
		go func(s *http.Server) {
			log.Printf("HTTP server listening on %s", s.Addr)
			if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server on %s: %v", s.Addr, err)
			}
		}(server)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error on %s: %v", server.Addr, err)
		}
	}

	log.Println("Servers stopped")
}
