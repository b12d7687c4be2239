package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"

	"github.com/joho/godotenv"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}

	application, cleanup, err := app.Bootstrap(cfg, container)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	return serve(application, addr, logger)
}

// serve blocks until the listener fails or a shutdown signal arrives, then
// drains in-flight requests within the grace period.
func serve(application *app.App, addr string, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Printf("shutting down | signal=%s", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return application.Fiber.ShutdownWithContext(ctx)
	}
}
