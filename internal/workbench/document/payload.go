package document

import (
	"fmt"
	"strings"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// Placeholder messages shown while a preview cannot be requested.
const (
	MsgSelectProfile   = "Enter or select a profile"
	MsgProfileNotFound = "Profile data not found"
	MsgStickProfile    = "Enter all dimensions and material properties"
	MsgManualProfile   = "Enter all profile properties"
	MsgSteelProfile    = "Enter all dimensions"
	MsgGlassUnit       = "Enter glass length and width"
	MsgFrame           = "Enter all frame parameters"
	MsgConnection      = "Enter all screw parameters"
	MsgAnchorage       = "Enter all anchor parameters"
	MsgWind            = "Insufficient inputs"
)

var (
	stickRequired  = []string{"web_length", "flange_length", "web_thk", "flange_thk", "F_y"}
	manualRequired = []string{
		"web_length", "flange_length", "web_thk", "flange_thk", "F_y",
		"Y", "X", "I_xx", "I_yy", "area", "plastic_x", "plastic_y",
	}
	steelRequired      = []string{"web_length", "flange_length", "thk"}
	glassRequired      = []string{"length", "width"}
	frameRequired      = []string{"length", "width"}
	connectionRequired = []string{"screw_nos", "screw_dia"}
	anchorageRequired  = []string{"anchor_dia", "embed_depth"}
	windRequired       = []string{"b_length", "b_width", "location", "b_floor_heights"}
)

// IncompleteError reports a preview payload that lacks required inputs.
// Message is the placeholder text to show in place of the preview.
type IncompleteError struct {
	Message string
	Missing []string
}

func (e *IncompleteError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s: %s", domain.ErrIncompletePayload, e.Message)
	}
	return fmt.Sprintf("%s: %s (missing %s)", domain.ErrIncompletePayload, e.Message, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return domain.ErrIncompletePayload }

// Payload is the body of one calc_preview request.
type Payload struct {
	ItemType domain.EntityKind
	Body     map[string]any
}

// ProfileLookup returns catalog data for a pre-defined profile name.
type ProfileLookup func(name string) (map[string]any, bool)

// BuildPayload assembles the preview request for item. Category items pull
// the glass thickness and first frame of cat; cat may be nil for profiles.
func BuildPayload(item domain.Item, cat *domain.Category, lookup ProfileLookup) (Payload, error) {
	rec := item.Base().Attrs
	out := Payload{ItemType: item.Kind()}

	switch v := item.(type) {
	case *domain.AlumProfile:
		name := v.Name()
		if name == "" {
			return out, &IncompleteError{Message: MsgSelectProfile}
		}
		switch v.Type {
		case domain.ProfilePredefined:
			var data map[string]any
			ok := false
			if lookup != nil {
				data, ok = lookup(name)
			}
			if !ok {
				return out, &IncompleteError{Message: MsgProfileNotFound}
			}
			out.Body = data
		case domain.ProfileStick:
			if err := requireFields(rec, stickRequired, MsgStickProfile); err != nil {
				return out, err
			}
			out.Body = recordBody(item)
		default:
			if err := requireFields(rec, manualRequired, MsgManualProfile); err != nil {
				return out, err
			}
			out.Body = recordBody(item)
		}
	case *domain.SteelProfile:
		if err := requireFields(rec, steelRequired, MsgSteelProfile); err != nil {
			return out, err
		}
		out.Body = map[string]any{}
		for _, k := range steelRequired {
			out.Body[k] = rec.Value(k)
		}
	case *domain.GlassUnit:
		if err := requireFields(rec, glassRequired, MsgGlassUnit); err != nil {
			return out, err
		}
		out.Body = recordBody(item)
	case *domain.Frame:
		if err := requireFields(rec, frameRequired, MsgFrame); err != nil {
			return out, err
		}
		out.Body = frameBody(v)
		out.Body["glass_thickness"] = glassThickness(cat)
	case *domain.Connection:
		if err := requireFields(rec, connectionRequired, MsgConnection); err != nil {
			return out, err
		}
		out.Body = recordBody(item)
		out.Body["frame"] = firstFrame(cat)
		out.Body["glass_thickness"] = glassThickness(cat)
	case *domain.Anchorage:
		if err := requireFields(rec, anchorageRequired, MsgAnchorage); err != nil {
			return out, err
		}
		out.Body = recordBody(item)
		out.Body["frame"] = firstFrame(cat)
		out.Body["glass_thickness"] = glassThickness(cat)
	default:
		return out, fmt.Errorf("%w: no preview for %s", domain.ErrUnknownVariant, item.Kind())
	}
	return out, nil
}

// WindPayload builds the wind_preview body from the project's wind record.
func WindPayload(w *domain.WindConfig) (map[string]any, error) {
	if err := requireFields(w.Attrs, windRequired, MsgWind); err != nil {
		return nil, err
	}
	return recordBody(w), nil
}

func requireFields(rec *domain.Record, names []string, msg string) error {
	var missing []string
	for _, n := range names {
		if strings.TrimSpace(rec.Value(n)) == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &IncompleteError{Message: msg, Missing: missing}
	}
	return nil
}

func recordBody(item domain.Item) map[string]any {
	body := map[string]any{}
	for _, t := range item.Tags() {
		body[t.Key] = t.Value
	}
	for _, f := range item.Base().Attrs.Fields() {
		body[f.Name] = f.Value
	}
	return body
}

// frameBody adds the resolved section properties under the names the
// calculation service reads for each reference.
func frameBody(f *domain.Frame) map[string]any {
	body := recordBody(f)
	put := func(s *domain.Section, ixx, iyy, phi string) {
		if s == nil {
			return
		}
		body[ixx], body[iyy], body[phi] = s.Ixx, s.Iyy, s.PhiMn
	}
	if f.Variant.MullionType == domain.MullionAluminumSteel {
		put(f.Sections.Mullion, "I_xa", "I_ya", "mul_phi_Mn_a")
		put(f.Sections.Steel, "I_xs", "I_ys", "mul_phi_Mn_s")
	} else {
		put(f.Sections.Mullion, "I_xx", "I_yy", "mul_phi_Mn")
	}
	put(f.Sections.Transom, "tran_I_xx", "tran_I_yy", "tran_phi_Mn")
	return body
}

func firstFrame(cat *domain.Category) map[string]any {
	if cat == nil || len(cat.Frames) == 0 {
		return map[string]any{}
	}
	return frameBody(cat.Frames[0])
}

func glassThickness(cat *domain.Category) float64 {
	if cat == nil {
		return 0
	}
	return cat.GlassThickness()
}
