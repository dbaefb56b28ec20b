package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beautyshop/internal/app"
	"beautyshop/internal/config"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Initialize store, event bus and HTTP app ---
	catalog, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := catalog.StartEventConsumer(); err != nil {
		log.Printf("Failed to start RabbitMQ consumer: %v", err)
	}

	// --- Start HTTP Server ---
	go func() {
		if err := catalog.Listen(); err != nil {
			log.Printf("Server stopped: %v", err)
			stop()
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := catalog.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
