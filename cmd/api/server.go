// cmd/api/server.go
// serve() starts the HTTP server and, on SIGINT or SIGTERM, drains it and
// flushes the catalog before returning.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// serve blocks until the server has shut down. In-flight requests get 20
// seconds to complete; the catalog is saved only after they have finished
// so no mutation is lost. A failed save is returned to the caller.
func (app *applicationDependencies) serve() error {
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		// Save even when draining timed out; the catalog is still consistent.
		if err := apiServer.Shutdown(ctx); err != nil {
			app.logger.Error("server shutdown incomplete", "error", err.Error())
		}

		shutdownErr <- app.library.Shutdown(context.Background())
	}()

	app.logger.Info("starting server", "address", apiServer.Addr, "environment", app.config.environment)

	err := apiServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownErr
	if err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}
