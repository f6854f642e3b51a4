package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cattle-records/internal/adapters/auth/credentials"
	"cattle-records/internal/platform/config"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/platform/metrics"
	"cattle-records/internal/ports/auth"
	"cattle-records/internal/router"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	*RootOptions
	Addr    string
	Migrate bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		Long: `Levanta la API HTTP con el storage configurado.

Sin archivo ni env usa storage en memoria y headers X-Debug-* como identidad.

Ejemplo:
  cattle-records serve
  cattle-records serve --config ./cattle.yaml --migrate
  DB_DRIVER=sqlite DB_DSN=./cattle.db cattle-records serve --addr :9090 --migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "dirección de escucha, pisa http.addr")
	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "aplica el esquema antes de arrancar (drivers SQL)")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.HTTP.Addr = opts.Addr
	}

	log := newLogger(cfg, cmd)

	repos, err := router.OpenStorage(ctx, cfg.Storage, opts.Migrate)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if repos.Close != nil {
		defer func() { _ = repos.Close() }()
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}
	if verifier == nil {
		log.Warn("auth.base_url not set, trusting X-Debug-* headers", nil)
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			Repos:        repos,
			Config:       &cfg,
			Logger:       log,
			Metrics:      metrics.New(),
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", map[string]any{"addr": cfg.HTTP.Addr, "storage": cfg.Storage.Driver})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("server shutting down", nil)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newLogger(cfg config.Config, cmd *cobra.Command) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
		Output: cmd.ErrOrStderr(),
	})
}

// newVerifier devuelve nil sin auth.base_url (modo dev).
func newVerifier(cfg config.Auth) (auth.Verifier, error) {
	if cfg.BaseURL == "" {
		return nil, nil
	}
	client, err := credentials.NewClient(credentials.Config{
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		APIKeyHeader: cfg.APIKeyHeader,
		Timeout:      cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("credentials client: %w", err)
	}
	return credentials.NewVerifier(client), nil
}
