package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris-regnier/dailylink/internal/api"
	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the slash commands over HTTP",
	Long: `Serve the daily link commands as a small JSON API so that editors and
scripts can insert links without the CLI.

Endpoints:
  GET  /commands              list the slash commands
  POST /slash/{id}            run an offset command and return the link
  POST /date/{date}           return the link for a date
  GET  /notebooks             list selectable notebooks
  PUT  /notebooks/selected    choose the daily note notebook`,
	Example: `  dailylink serve
  dailylink serve --addr 127.0.0.1:9000 --storage sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config api.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	addr := appConfig.API.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	g, ctx := errgroup.WithContext(ctx)

	snapshot, err := watchSettings(ctx)
	if err != nil {
		return err
	}
	h := api.NewHandler(newDispatcher(slash.WithSettings(snapshot)), notebook.NewSelector(store), store, logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info("serving daily link API", "addr", addr, "storage", appConfig.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
