// Package main provides the ats_agent command: it scores resumes against job
// descriptions, manages analysis history and serves the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	debug      bool
	logJSON    bool
	storage    string
	sqlitePath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "ats_agent",
		Short:         "Resume ATS compatibility scorer",
		Long:          "ats_agent scores how well a resume will fare with applicant tracking systems, optionally against a job description, and keeps a per-user history of analyses.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file (default ./ats.yaml if present)")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")
	pf.StringVar(&opts.storage, "storage", "", "History store: memory, postgres or sqlite")
	pf.StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite database file for the sqlite store")

	cmd.AddCommand(
		newServeCmd(opts),
		newAnalyzeCmd(opts),
		newBatchCmd(opts),
		newHistoryCmd(opts),
		newStatsCmd(opts),
		newDeleteCmd(opts),
		newMigrateCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// load reads configuration with the persistent flags layered on top.
func (o *rootOptions) load(cmd *cobra.Command, extra ...config.Option) (*config.Config, error) {
	flags := cmd.Flags()
	opts := []config.Option{
		config.WithFlag("logging.debug", flags.Lookup("debug")),
		config.WithFlag("logging.json", flags.Lookup("log-json")),
		config.WithFlag("storage.driver", flags.Lookup("storage")),
		config.WithFlag("storage.sqlitePath", flags.Lookup("sqlite-path")),
	}
	return config.Load(o.configPath, append(opts, extra...)...)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
