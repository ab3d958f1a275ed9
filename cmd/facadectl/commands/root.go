package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/preview"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

var (
	serviceURL string
	timeout    time.Duration

	res    *schema.Resolver
	client *preview.Client
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "facadectl",
		Short:         "Inspect, recompute and report on facade design documents",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			res = schema.New()
			client = preview.NewClient(preview.Options{
				BaseURL:       serviceURL,
				Timeout:       timeout,
				ReportTimeout: timeout,
			})
			return nil
		},
	}

	defaultURL := os.Getenv("PREVIEW_SERVICE_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}
	root.PersistentFlags().StringVar(&serviceURL, "service", defaultURL, "calculation service base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "timeout for calls to the calculation service")

	root.AddCommand(validateCmd(), deriveCmd(), schemaCmd(), catalogCmd(), reportCmd())
	return root
}

// loadDocument reads and decodes the document named by path.
func loadDocument(cmd *cobra.Command, path string) (*domain.Project, *document.ImportReport, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return document.Decode(string(b), res)
}

func printWarnings(w io.Writer, report *document.ImportReport) {
	for _, msg := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}
