package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <kind> [variant...]",
		Short: "Print the attributes of an entity kind",
		Long: "Print the attributes of an entity kind. Kinds with variants take " +
			"their discriminants as extra arguments, e.g. `schema frame regular \"Aluminum Only\"`.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := res.Resolve(domain.EntityKind(args[0]), args[1:]...)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tUNIT\tOPTIONS\tDEFAULT")
			for _, a := range s.Attributes {
				opts := strings.Join(a.Options, "|")
				if a.Catalog != "" {
					opts = "<" + string(a.Catalog) + ">"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.Name, a.Kind, a.Unit, opts, s.Defaults[a.Name])
			}
			return tw.Flush()
		},
	}
}
