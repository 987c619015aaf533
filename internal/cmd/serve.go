package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"chatbot/internal/database"
	"chatbot/internal/handler"
	"chatbot/internal/metrics"
	"chatbot/internal/repository"
	"chatbot/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	db, err := database.Open(ctx, a.cfg.DatabaseDriver, a.cfg.DatabaseUrl, a.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewSQLExchangeRepository(db, a.logger)
	m := metrics.New()
	chat := service.NewChatService(service.NewResponder(), repo, m, a.logger, a.cfg.StrictExchangeLogging)
	h := handler.New(chat, repo, a.logger)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler.NewRouter(h, m.Handler(), m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.cfg.HTTPAddr),
			zap.String("driver", a.cfg.DatabaseDriver),
			zap.Bool("strict_exchange_logging", a.cfg.StrictExchangeLogging))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
