package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"campus-share-be/internal/bootstrap"
	"campus-share-be/internal/config"
	"campus-share-be/internal/server"
	"campus-share-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 1.5 Tracer (disabled unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Close()

	// 3. Seed the library from the blob store
	if err := container.LibraryService.Load(context.Background()); err != nil {
		log.Panicf("Unable to load library: %v", err)
	}

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
