package commands

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/scheduler"
)

func deriveCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "derive <file|->",
		Short: "Recompute every derived value and print the resulting document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, report, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), report)

			failures := scheduler.RecomputeAll(p)
			ids := make([]domain.EntityID, 0, len(failures))
			for id := range failures {
				ids = append(ids, id)
			}
			slices.Sort(ids)
			for _, id := range ids {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", id, failures[id])
			}

			text := document.Encode(p)
			if output == "" || output == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
			return os.WriteFile(output, []byte(text), 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to this file instead of stdout")
	return cmd
}
