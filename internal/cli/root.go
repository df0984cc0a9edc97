// Package cli provides the modelgen command line interface.
package cli

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

var (
	cfgFile string
	cfg     *Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modelgen",
		Short: "Map OpenAPI component schemas to relational models",
		Long: `modelgen reads an OpenAPI specification and turns each component schema
into a relational model definition: table name, columns, keys, and indexes.
The ddl subcommand emits CREATE TABLE statements for a chosen dialect; the
inspect subcommand lists how each schema would be mapped.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			cfg, err = LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default "+ConfigFileName+")")
	flags.String("source", "", "OpenAPI specification path or URL")
	flags.String("dialect", "sqlite", "SQL dialect for DDL emission")
	flags.String("dsn", "", "database DSN to execute DDL against (sqlite)")

	rootCmd.AddCommand(newDDLCmd())
	rootCmd.AddCommand(newInspectCmd())
	return rootCmd
}

// Execute runs the root command and reports failures on stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// parseSource maps the --source value onto a loader source, accepting file
// paths and http(s) URLs. URLs are validated here so a typo surfaces as a
// command error rather than a panic.
func parseSource(raw string) (pkgopenapi.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if _, err := url.ParseRequestURI(path); err != nil {
			return nil, fmt.Errorf("invalid source URL %q: %w", path, err)
		}
		return pkgopenapi.SourceFromURL(path), nil
	}
	return pkgopenapi.SourceFromFile(path), nil
}
