// Command docxedit edits Word documents, either as an MCP server on stdio or
// one command at a time from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/docxedit/edit"
	"github.com/tsawler/docxedit/internal/config"
	"github.com/tsawler/docxedit/internal/logging"
	"github.com/tsawler/docxedit/internal/metrics"
	"github.com/tsawler/docxedit/session"
	"github.com/tsawler/docxedit/tools"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docxedit",
	Short: "Style-preserving Word document editor",
	Long: `docxedit edits .docx files while keeping their formatting.

Run "docxedit serve" to expose the document tools to an MCP client over
stdio, or "docxedit call" and "docxedit run" to use them from the shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides metrics.addr)")
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "Print the tool schemas as JSON")
	callCmd.Flags().StringVarP(&callFile, "file", "f", "", "Open this document before the call")
	callCmd.Flags().BoolVar(&callSave, "save", false, "Save the document after a successful call")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRegistry wires the document tools to sess using the loaded config.
func newRegistry(sess *session.Session, m *metrics.Metrics) (*tools.Registry, error) {
	boundary, err := edit.ParseBoundary(cfg.HeadingBoundary)
	if err != nil {
		return nil, err
	}
	env := &tools.Env{
		Session:    sess,
		Radius:     cfg.KeywordRadius,
		Boundary:   boundary,
		CopySuffix: cfg.CopySuffix,
	}
	return tools.NewDefaultRegistry(env, logger, m), nil
}
