// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/coursefinder/internal/logging"
	"github.com/pdiddy/coursefinder/internal/metrics"
	"github.com/pdiddy/coursefinder/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search form as a web page",
	Long: `Serve starts an HTTP server with the search form at /, a liveness check at
/health, and Prometheus metrics at /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8123)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log, cfg.Serve.Production)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Serve.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := web.NewServer(newQuerier(cfg), formOptions(cfg), log, metrics.New())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("query service", zap.String("endpoint", cfg.QueryService.Endpoint))
	return srv.Run(ctx, cfg.Serve.Addr)
}
