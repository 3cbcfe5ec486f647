// Package http arma el servidor del front de autenticación.
package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kjunlab/authfront/internal/observability/logger"
)

// NewServer crea el http.Server con timeouts de producción.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run sirve hasta que ctx se cancele y luego hace shutdown graceful.
func Run(ctx context.Context, srv *http.Server) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.L().Info("server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.L().Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
