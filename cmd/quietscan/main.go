// quietscan: Quiet Presence Score MCP server.
//
// A brand owner and up to three clients answer the same short questions
// through any MCP-capable assistant; quietscan scores the five pillars,
// derives the Global Brand Health indicators and compares the views.
//
// Usage:
//
//	quietscan serve           # Start MCP server (stdio transport)
//	quietscan catalog         # Show or validate the question catalog
//	quietscan report list     # List archived reports
//	quietscan report show ID  # Print one archived report
//	quietscan update          # Update to the latest version
package main

import (
	"fmt"
	"os"

	"github.com/HendryAvila/quietscan/internal/config"
	"github.com/HendryAvila/quietscan/internal/logging"
	qserver "github.com/HendryAvila/quietscan/internal/server"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// app carries what every subcommand needs after the root pre-run.
type app struct {
	configPath string
	cfg        config.Config
	logger     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "quietscan",
		Short:         "Quiet Presence Score MCP server",
		Version:       qserver.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.quietscan/config.yaml)")

	root.AddCommand(
		newServeCmd(a),
		newCatalogCmd(a),
		newReportCmd(a),
		newUpdateCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// Skip config loading.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quietscan v%s\n", qserver.Version)
		},
	}
}
