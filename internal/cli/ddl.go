package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	modelgen "github.com/goliatone/go-modelgen"
	pkgmodel "github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

const loadTimeout = 30 * time.Second

func newDDLCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ddl [schema...]",
		Short: "Emit CREATE TABLE statements for component schemas",
		Long: `Builds relational models for the named component schemas and prints the
CREATE TABLE (and CREATE INDEX) statements for the configured dialect. With
--dsn the statements are also executed against a sqlite database. When no
schemas are named, --all maps every schema and a terminal prompts for a
selection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dialect, ok := pkgmodel.DialectByName(cfg.Dialect)
			if !ok {
				return fmt.Errorf("unknown dialect %q, have %v", cfg.Dialect, pkgmodel.Dialects())
			}

			index, err := loadIndex(ctx, cfg.Source)
			if err != nil {
				return err
			}

			names, err := pickSchemas(args, index, all)
			if err != nil {
				return err
			}

			base := pkgmodel.NewBase()
			factory := modelgen.InitSchemaIndex(base, index)

			for _, name := range names {
				m, err := factory.Model(name)
				if err != nil {
					return err
				}
				stmt, err := pkgmodel.CreateTableSQL(m, dialect)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", stmt)
				for _, idx := range pkgmodel.CreateIndexSQL(m, dialect) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", idx)
				}
			}

			if cfg.DSN != "" {
				return executeDDL(ctx, base, dialect, cfg.DSN)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "map every component schema")
	return cmd
}

func loadIndex(ctx context.Context, source string) (pkgopenapi.SchemaIndex, error) {
	src, err := parseSource(source)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("a specification source is required (--source, config, or MODELGEN_SOURCE)")
	}

	loader := modelgen.NewLoader(pkgopenapi.WithHTTPFallback(loadTimeout))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	parser := modelgen.NewParser()
	return parser.Schemas(ctx, doc)
}

// pickSchemas resolves which schemas to map: explicit args win, then the
// config file list, then --all, and finally an interactive selection.
func pickSchemas(args []string, index pkgopenapi.SchemaIndex, all bool) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Schemas) > 0 {
		return cfg.Schemas, nil
	}

	names := index.Names()
	sort.Strings(names)
	if len(names) == 0 {
		return nil, errors.New("the specification defines no component schemas")
	}
	if all {
		return names, nil
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message:  "Select schemas to map:",
		Options:  names,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.Required)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, errors.New("selection cancelled")
		}
		return nil, fmt.Errorf("schema selection failed (pass schema names or --all): %w", err)
	}
	return selected, nil
}

func executeDDL(ctx context.Context, base *pkgmodel.Base, dialect pkgmodel.Dialect, dsn string) error {
	if dialect.Name() != "sqlite" {
		return fmt.Errorf("--dsn execution is only wired for the sqlite dialect, got %q", dialect.Name())
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	return base.CreateAll(ctx, db, dialect)
}
