package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/facadeworks/facade-workbench/internal/logging"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/preview"
)

// Source is the collaborator the catalog is loaded from.
type Source interface {
	ProfileNames(ctx context.Context) (*preview.ProfileNames, error)
	ProfileData(ctx context.Context) (*preview.ProfileData, error)
	WindLocations(ctx context.Context) ([]preview.WindLocation, error)
}

// DefaultWindLocation is preselected when the location table has it.
const DefaultWindLocation = "Dhaka"

// Service caches the profile catalog and the wind location table. It is
// safe for concurrent use; Refresh replaces the whole snapshot.
type Service struct {
	src Source

	mu        sync.RWMutex
	alumNames []string
	steel     []string
	data      map[string]map[string]any
	locations []preview.WindLocation
}

func NewService(src Source) *Service {
	return &Service{src: src, data: map[string]map[string]any{}}
}

// Refresh reloads everything from the source. Parts that fail to load keep
// their previous contents; the first error is returned.
func (s *Service) Refresh(ctx context.Context) error {
	log := logging.FromContext(ctx)
	var firstErr error
	keep := func(what string, err error) {
		log.Warn("catalog refresh failed", "part", what, "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to load %s: %w", what, err)
		}
	}

	names, err := s.src.ProfileNames(ctx)
	if err != nil {
		keep("profile names", err)
	}
	data, err := s.src.ProfileData(ctx)
	if err != nil {
		keep("profile data", err)
	}
	locs, err := s.src.WindLocations(ctx)
	if err != nil {
		keep("wind locations", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if names != nil {
		s.alumNames = append([]string(nil), names.AlumProfiles...)
		s.steel = append([]string(nil), names.SteelProfiles...)
	}
	if data != nil {
		m := make(map[string]map[string]any, len(data.AlumProfiles)+len(data.SteelProfiles))
		for _, list := range [][]map[string]any{data.AlumProfiles, data.SteelProfiles} {
			for _, rec := range list {
				if name, ok := rec["profile_name"].(string); ok && name != "" {
					m[name] = rec
				}
			}
		}
		s.data = m
	}
	if locs != nil {
		s.locations = append([]preview.WindLocation(nil), locs...)
	}
	log.Info("catalog refreshed", "alum", len(s.alumNames), "steel", len(s.steel), "sections", len(s.data), "locations", len(s.locations))
	return firstErr
}

// AlumNames returns the pre-defined aluminum profile names.
func (s *Service) AlumNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.alumNames...)
}

// SteelNames returns the catalog steel profile names.
func (s *Service) SteelNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.steel...)
}

// Data returns the catalog record for a profile name.
func (s *Service) Data(name string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[name]
	return d, ok
}

// Section extracts the section properties a frame needs.
func (s *Service) Section(name string) (*domain.Section, bool) {
	d, ok := s.Data(name)
	if !ok {
		return nil, false
	}
	return &domain.Section{
		Name:  name,
		Ixx:   number(d["I_xx"]),
		Iyy:   number(d["I_yy"]),
		PhiMn: number(d["phi_Mn"]),
	}, true
}

// Locations returns the wind location table in source order.
func (s *Service) Locations() []preview.WindLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]preview.WindLocation(nil), s.locations...)
}

// WindSpeed looks up the basic wind speed of a location.
func (s *Service) WindSpeed(location string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.locations {
		if l.Name == location {
			return l.Speed, true
		}
	}
	return "", false
}

// FirstAlum returns the first catalog name starting with prefix.
func (s *Service) FirstAlum(prefix string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.alumNames {
		if strings.HasPrefix(n, prefix) {
			return n, true
		}
	}
	return "", false
}

func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	}
	return 0
}
