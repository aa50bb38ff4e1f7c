// Command specview serves an OpenAPI document over the Model Context
// Protocol so agents can explore it tool by tool instead of reading the raw
// file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/specview/specview/pkg/server"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "specview",
		Short:         "MCP server for exploring OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand(ctx))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newServeCommand(ctx context.Context) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve [spec file or URL]",
		Short: "Serve a spec over MCP",
		Long: `Serve an OpenAPI document over the Model Context Protocol.

The document comes from a file or URL argument, or from the spec catalog in
PostgreSQL when --database-url and --spec-name are set. All flags can also be
set via SPECVIEW_* environment variables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				v.Set("spec_source", args[0])
			}
			cfg, err := server.LoadConfig(v)
			if err != nil {
				return err
			}

			logger, err := buildLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			srv, err := server.New(cfg, version, logger)
			if err != nil {
				return err
			}
			if err := srv.LoadInitial(ctx); err != nil {
				return fmt.Errorf("load spec: %w", err)
			}
			return srv.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("transport", server.TransportStdio, "transport: stdio or http")
	flags.String("http-addr", ":8080", "listen address for http transport")
	flags.String("base-path", "/mcp", "mount path of the MCP endpoint")
	flags.String("database-url", "", "PostgreSQL URL of the spec catalog")
	flags.String("spec-name", "", "name of the catalog spec to serve")
	flags.Bool("watch", false, "reload when the spec file changes")
	flags.Int("chunk-size", 0, "default bytes per chunk for paged tools (0 uses the built-in default)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	bind := map[string]string{
		"transport":    "transport",
		"http_addr":    "http-addr",
		"base_path":    "base-path",
		"database_url": "database-url",
		"spec_name":    "spec-name",
		"watch":        "watch",
		"chunk_size":   "chunk-size",
		"log_level":    "log-level",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "specview %s (commit %s, built %s)\n",
				version, commit, buildTime)
		},
	}
}

// buildLogger writes structured logs to stderr, keeping stdout clean for the
// stdio transport.
func buildLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
