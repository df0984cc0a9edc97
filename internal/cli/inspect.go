package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	modelgen "github.com/goliatone/go-modelgen"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List component schemas and their relational mapping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			index, err := loadIndex(ctx, cfg.Source)
			if err != nil {
				return err
			}

			names := index.Names()
			sort.Strings(names)

			factory := modelgen.InitSchemaIndex(nil, index)
			out := cmd.OutOrStdout()

			for _, name := range names {
				m, err := factory.Model(name)
				if err != nil {
					fmt.Fprintf(out, "%s: not mappable: %v\n", name, err)
					continue
				}
				fmt.Fprintf(out, "%s -> %s\n", name, m.Table)
				for _, c := range m.Columns {
					flags := ""
					if c.PrimaryKey {
						flags += " pk"
					}
					if c.Autoincrement {
						flags += " autoincrement"
					}
					if c.Unique {
						flags += " unique"
					}
					if c.Index {
						flags += " index"
					}
					if !c.Nullable {
						flags += " not-null"
					}
					if c.ForeignKey != nil {
						flags += fmt.Sprintf(" fk=%s.%s", c.ForeignKey.Table, c.ForeignKey.Column)
					}
					fmt.Fprintf(out, "  %-20s %s%s\n", c.Name, c.Type, flags)
				}
			}
			return nil
		},
	}
}
