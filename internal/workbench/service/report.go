package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/facadeworks/facade-workbench/internal/workbench/document"
)

var whitespace = regexp.MustCompile(`\s+`)

// Report is a rendered report ready for download.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportFilename derives the download name from the project name.
func ReportFilename(projectName string, summary bool) string {
	suffix := "report.pdf"
	if summary {
		suffix = "summary.pdf"
	}
	name := whitespace.ReplaceAllString(strings.TrimSpace(projectName), "_")
	if name == "" {
		return suffix
	}
	return name + "_" + suffix
}

// GenerateReport renders the full or summary report of the document.
func (s *Session) GenerateReport(ctx context.Context, summary bool) (*Report, error) {
	text, name, err := s.documentText(ctx)
	if err != nil {
		return nil, err
	}
	gen := s.collab.GenerateReport
	if summary {
		gen = s.collab.GenerateSummaryReport
	}
	data, contentType, err := gen(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &Report{Filename: ReportFilename(name, summary), ContentType: contentType, Data: data}, nil
}

// PreviewSummary renders the summary report as HTML.
func (s *Session) PreviewSummary(ctx context.Context) (string, error) {
	text, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	html, err := s.collab.PreviewSummary(ctx, text)
	if err != nil {
		return "", fmt.Errorf("preview summary: %w", err)
	}
	return html, nil
}

// documentText returns the serialized document and the project name.
func (s *Session) documentText(ctx context.Context) (text, name string, err error) {
	err = s.do(ctx, func() error {
		text = document.Encode(s.project)
		name = s.project.Name()
		return nil
	})
	return text, name, err
}
