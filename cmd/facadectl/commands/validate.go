package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Parse a design document and report what was skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, report, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printWarnings(out, report)
			fmt.Fprintf(out, "%s: %d categories, %d entities, %d warnings\n",
				displayName(p.Name()), len(p.Categories), len(p.Items()), len(report.Warnings))
			if strict && len(report.Warnings) > 0 {
				return fmt.Errorf("%d warnings", len(report.Warnings))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the document has warnings")
	return cmd
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed project)"
	}
	return name
}
