package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"example.com/registro/internal/storage"
	"example.com/registro/internal/storage/csvfile"
	"example.com/registro/internal/tracing"
	transport "example.com/registro/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server that processes registration form posts.

Example:
  registro serve                          # :8080, ./registros.csv
  registro serve --port 9000 --store /var/lib/registro/registros.csv`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "port to listen on (overrides config)")
	serveCmd.Flags().String("store", "", "path of the CSV file receiving submissions")
	serveCmd.Flags().String("static-dir", "", "directory served at / (landing page)")

	_ = viper.BindPFlag("http.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("store.path", serveCmd.Flags().Lookup("store"))
	_ = viper.BindPFlag("http.static_dir", serveCmd.Flags().Lookup("static-dir"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Printf("config: store=%s port=%s submit=%s strict_status=%t", cfg.Store.Path, cfg.HTTP.Port, cfg.HTTP.SubmitPath, cfg.HTTP.StrictStatus)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Printf("[tracing] shutdown: %v", err)
		}
	}()
	if tp.Enabled() {
		log.Printf("[tracing] enabled (exporter=%s sample_rate=%v)", cfg.Tracing.Exporter, cfg.Tracing.SampleRate)
	}

	store := csvfile.New(cfg.Store.Path, cfg.Store.Lock)
	if err := store.Ready(ctx); err != nil {
		log.Printf("[store] not writable yet: %v", err)
	}

	tracer := tracerOrNil(tp)
	deps := &transport.ServerDeps{
		Cfg:    cfg,
		Store:  storage.Traced(store, tracer),
		Tracer: tracer,
		Now:    time.Now,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           deps.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Printf("server stopped")
	return nil
}

// tracerOrNil keeps spans out of the request path entirely when tracing is
// off, instead of creating no-op spans.
func tracerOrNil(tp *tracing.Provider) trace.Tracer {
	if !tp.Enabled() {
		return nil
	}
	return tp.Tracer()
}
