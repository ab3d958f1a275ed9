package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the catalog profiles and wind locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			names, err := client.ProfileNames(ctx)
			if err != nil {
				return err
			}
			locations, err := client.WindLocations(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Aluminium profiles:")
			for _, n := range names.AlumProfiles {
				fmt.Fprintf(out, "  %s\n", n)
			}
			fmt.Fprintln(out, "Steel profiles:")
			for _, n := range names.SteelProfiles {
				fmt.Fprintf(out, "  %s\n", n)
			}
			fmt.Fprintln(out, "Wind locations:")
			for _, l := range locations {
				fmt.Fprintf(out, "  %s\t%s\n", l.Name, l.Speed)
			}
			return nil
		},
	}
}
