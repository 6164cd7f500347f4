// Package httpd implements the HTTP server command for the warehouse.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newswarehouse/cmd/common"
	"github.com/jonesrussell/newswarehouse/internal/api"
	"github.com/jonesrussell/newswarehouse/internal/constants"
	"github.com/jonesrussell/newswarehouse/internal/job"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve the read API and run the ingest scheduler",
		Long: `Starts the HTTP read API and the periodic ingest scheduler. The scheduler
runs the crawl-and-merge pipeline immediately and then on the configured
interval until the process is interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start(cmd.Context())
		},
	}
}

// Start starts the HTTP server and scheduler and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start(ctx context.Context) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	result, err := common.BuildPipeline(deps.Config, deps.Logger)
	if err != nil {
		return err
	}
	defer result.DB.Close()

	scheduler := job.NewScheduler(result.Pipeline, result.Warehouse, job.Config{
		Interval:     deps.Config.Scraper.Interval,
		SteadyPages:  deps.Config.Scraper.Pages,
		InitialPages: deps.Config.Scraper.InitialPages,
	}, deps.Logger)

	if startErr := scheduler.Start(ctx); startErr != nil {
		return fmt.Errorf("failed to start scheduler: %w", startErr)
	}

	articlesHandler := api.NewArticlesHandler(result.Reader, deps.Logger)
	router := api.SetupRouter(deps.Logger, articlesHandler)
	server := api.NewHTTPServer(&deps.Config.Server, router)

	deps.Logger.Info("Starting HTTP server", "addr", deps.Config.Server.Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runUntilInterrupt(deps.Logger, server, scheduler, errChan)
}

// runUntilInterrupt blocks until a shutdown signal or a server error.
func runUntilInterrupt(
	log logger.Interface,
	server *http.Server,
	scheduler *job.Scheduler,
	errChan chan error,
) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		return shutdown(log, server, scheduler, sig)
	}
}

// shutdown performs graceful shutdown of the scheduler and the server.
func shutdown(log logger.Interface, server *http.Server, scheduler *job.Scheduler, sig os.Signal) error {
	log.Info("Shutdown signal received", "signal", sig.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	log.Info("Stopping scheduler")
	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop scheduler", "error", err)
	}

	log.Info("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
