package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/service"
)

func reportCmd() *cobra.Command {
	var (
		summary bool
		dir     string
	)
	cmd := &cobra.Command{
		Use:   "report <file|->",
		Short: "Render the report of a design document to a PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, report, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), report)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			gen := client.GenerateReport
			if summary {
				gen = client.GenerateSummaryReport
			}
			data, _, err := gen(ctx, document.Encode(p))
			if err != nil {
				return err
			}

			path := filepath.Join(dir, service.ReportFilename(p.Name(), summary))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "render the summary report")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to write the report to")
	return cmd
}
