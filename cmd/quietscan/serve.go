package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	qserver "github.com/HendryAvila/quietscan/internal/server"
	"github.com/HendryAvila/quietscan/internal/updater"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		metricsAddr string
		noUpdate    bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if metricsAddr != "" {
				a.cfg.MetricsAddr = metricsAddr
			}
			return runServe(cmd.Context(), a, !noUpdate)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. 127.0.0.1:9464)")
	cmd.Flags().BoolVar(&noUpdate, "no-update-check", false, "skip the background release check")
	return cmd
}

func runServe(ctx context.Context, a *app, checkUpdates bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s, cleanup, err := qserver.New(qserver.Deps{
		Config:   a.cfg,
		Logger:   a.logger,
		Registry: reg,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Update notices go to the log (stderr), never to the stdio transport.
	if checkUpdates {
		go checkForUpdates(ctx, a.logger)
	}

	g, gctx := errgroup.WithContext(ctx)
	stdioCtx, cancelStdio := context.WithCancel(gctx)
	defer cancelStdio()

	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(zap.NewStdLog(a.logger.Named("stdio")))
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		err := stdio.Listen(stdioCtx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	})

	if a.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		srv := &http.Server{
			Addr:              a.cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: shutdownTimeout,
		}
		g.Go(func() error {
			a.logger.Info("metrics listener", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics listener: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-gctx.Done():
			case <-done:
			}
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	return g.Wait()
}

func checkForUpdates(ctx context.Context, logger *zap.Logger) {
	res, _, err := updater.NewChecker().Check(ctx, qserver.Version)
	if err != nil {
		logger.Debug("update check failed", zap.Error(err))
		return
	}
	if res.UpdateAvailable {
		logger.Info("update available",
			zap.String("current", res.CurrentVersion),
			zap.String("latest", res.LatestVersion),
			zap.String("release", res.ReleaseURL),
		)
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update quietscan to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, gray("Checking for updates..."))

			res, err := updater.NewChecker().Update(cmd.Context(), qserver.Version)
			switch {
			case errors.Is(err, updater.ErrUpToDate):
				fmt.Fprintln(out, green(fmt.Sprintf("Already at the latest version (v%s)", res.CurrentVersion)))
				return nil
			case err != nil:
				if res != nil && res.ReleaseURL != "" {
					fmt.Fprintf(out, "Download manually from %s\n", res.ReleaseURL)
				}
				return fmt.Errorf("update failed: %w", err)
			}
			a.logger.Info("updated", zap.String("from", res.CurrentVersion), zap.String("to", res.LatestVersion))
			fmt.Fprintln(out, green(fmt.Sprintf("Updated v%s → v%s. Restart quietscan to use it.", res.CurrentVersion, res.LatestVersion)))
			return nil
		},
	}
}
