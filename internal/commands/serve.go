package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/httpapi"
)

func newServeCommand(booksDir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over a read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *booksDir, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from tally.yaml)")

	return cmd
}

func runServe(ctx context.Context, dir, addr string) error {
	b, err := openBooks(ctx, dir)
	if err != nil {
		return err
	}
	defer b.close()

	if addr == "" {
		addr = b.cfg.Server.Addr
	}

	api := httpapi.NewServer(b.reports, b.logger,
		httpapi.WithFiscalYearStart(b.cfg.Fiscal.YearStart),
		httpapi.WithCurrency(b.cfg.Reporting.Currency),
		httpapi.WithAllowedOrigins(b.cfg.Server.CORSOrigins...),
	)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		b.logger.Info("http server starting", zap.String("addr", addr), zap.String("books", b.root))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	b.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
