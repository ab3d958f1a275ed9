package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/facadeworks/facade-workbench/internal/workbench/preview"
)

// Figure categories the report groups first, in this order.
var figureCategoryOrder = []string{"Wind", "Profiles", "Categories"}

// FigureGroup counts the figures of one category.
type FigureGroup struct {
	Category string   `json:"category"`
	Found    int      `json:"found"`
	Missing  int      `json:"missing"`
	Names    []string `json:"missing_names,omitempty"`
}

// FigureReport is the latest figure check of a session.
type FigureReport struct {
	Found     int              `json:"found"`
	Missing   int              `json:"missing"`
	Groups    []FigureGroup    `json:"groups"`
	Figures   []preview.Figure `json:"figures"`
	CheckedAt time.Time        `json:"checked_at"`
	Error     string           `json:"error,omitempty"`
	Status    string           `json:"status"`
}

// Summary is the one-line status shown next to the report button.
func (r *FigureReport) Summary() string {
	switch {
	case r == nil:
		return "Figures not checked"
	case r.Error != "":
		return "Figure check failed: " + r.Error
	case len(r.Figures) == 0:
		return "No figures required"
	case r.Missing == 0:
		return fmt.Sprintf("All %d figures ready", r.Found)
	}
	return fmt.Sprintf("%d of %d figures ready, %d missing", r.Found, r.Found+r.Missing, r.Missing)
}

func summarizeFigures(figs []preview.Figure, at time.Time) *FigureReport {
	r := &FigureReport{Figures: figs, CheckedAt: at, Groups: []FigureGroup{}}
	index := map[string]int{}
	group := func(cat string) *FigureGroup {
		i, ok := index[cat]
		if !ok {
			i = len(r.Groups)
			index[cat] = i
			r.Groups = append(r.Groups, FigureGroup{Category: cat})
		}
		return &r.Groups[i]
	}
	for _, c := range figureCategoryOrder {
		if slices.ContainsFunc(figs, func(f preview.Figure) bool { return f.Category == c }) {
			group(c)
		}
	}
	for _, f := range figs {
		g := group(f.Category)
		if f.Exists {
			g.Found++
			r.Found++
			continue
		}
		g.Missing++
		g.Names = append(g.Names, f.Name)
		r.Missing++
	}
	return r
}

// RefreshFigures asks the collaborator which report figures exist for the
// current document. A failed check is kept in the report rather than
// returned, so the last status stays visible.
func (s *Session) RefreshFigures(ctx context.Context) (*FigureReport, error) {
	text, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	figs, callErr := s.collab.CheckFigures(ctx, text)
	report := summarizeFigures(figs, s.now())
	if callErr != nil {
		report.Error = callErr.Error()
	}
	report.Status = report.Summary()
	err = s.do(ctx, func() error {
		s.figures = report
		return nil
	})
	return report, err
}
