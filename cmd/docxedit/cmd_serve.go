package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/docxedit/internal/metrics"
	"github.com/tsawler/docxedit/mcp"
	"github.com/tsawler/docxedit/session"
)

var metricsAddr string

// serveCmd runs the MCP server on stdin and stdout
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the document tools over MCP on stdio",
	Long: `Starts the DocxProcessor MCP server on stdin and stdout.

The server starts with no document open unless restore_last_document is set.
On shutdown the open document is saved and its path recorded in the state
file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Metrics.Addr
	if metricsAddr != "" {
		addr = metricsAddr
	}
	var m *metrics.Metrics
	if addr != "" {
		m = metrics.New()
		srv := startMetrics(addr, m)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sess := session.New(logger)
	st := session.NewStateStore(cfg.StateFile, logger)
	if cfg.RestoreLastDocument {
		if session.RestoreLast(sess, st) {
			logger.Info("restored last document", zap.String("path", sess.Path()))
		}
	} else if err := st.Clear(); err != nil {
		logger.Error("failed to remove existing state file", zap.Error(err))
	}

	reg, err := newRegistry(sess, m)
	if err != nil {
		return err
	}
	server := mcp.NewServer(reg, os.Stdin, os.Stdout, logger)
	server.Version = version

	logger.Info("DocxProcessor MCP server starting", zap.String("session", sess.ID), zap.String("version", version))
	serveErr := server.Serve(ctx)

	logger.Info("DocxProcessor MCP server shutting down")
	if sess.IsOpen() {
		if err := session.Shutdown(sess, st); err != nil {
			logger.Error("failed to save state", zap.Error(err))
		}
	} else {
		logger.Info("no document open, not saving state")
	}

	if errors.Is(serveErr, context.Canceled) {
		return nil
	}
	return serveErr
}

func startMetrics(addr string, m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
