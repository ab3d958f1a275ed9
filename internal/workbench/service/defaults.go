package service

import (
	"github.com/facadeworks/facade-workbench/internal/workbench/catalog"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

// DefaultProject is the document a new session starts from: a mullion and
// a transom from the catalog, one steel profile and one category holding
// one entity of each kind.
func DefaultProject(res *schema.Resolver, cat *catalog.Service) *domain.Project {
	p := res.NewProject()

	for _, prefix := range []string{"M", "T"} {
		item, _ := res.NewItem(domain.KindAlumProfile, string(domain.ProfilePredefined))
		a := item.(*domain.AlumProfile)
		if name, ok := cat.FirstAlum(prefix); ok {
			_ = a.Attrs.Set("profile_name", name, domain.OriginDefault)
		}
		p.AlumProfiles = append(p.AlumProfiles, a)
	}
	steel, _ := res.NewItem(domain.KindSteelProfile)
	p.SteelProfiles = append(p.SteelProfiles, steel.(*domain.SteelProfile))

	c := res.NewCategory("")
	p.Categories = append(p.Categories, c)
	for _, kind := range []domain.EntityKind{domain.KindGlassUnit, domain.KindFrame, domain.KindConnection, domain.KindAnchorage} {
		item, _ := res.NewItem(kind)
		_ = p.Add(item, c.ID)
		if f, ok := item.(*domain.Frame); ok {
			catalog.DefaultReferences(p, f)
			cat.ResolveSections(f)
		}
	}

	if speed, ok := cat.WindSpeed(catalog.DefaultWindLocation); ok {
		_ = p.Wind.Attrs.Set("location", catalog.DefaultWindLocation, domain.OriginDefault)
		_ = p.Wind.Attrs.Set("wind_speed", speed, domain.OriginDefault)
	}
	return p
}
