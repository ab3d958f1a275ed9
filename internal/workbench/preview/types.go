package preview

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder statuses shown in place of a preview.
const (
	StatusCalculating = "Calculating…"
	StatusFailed      = "Calculation failed"
	StatusError       = "Calculation error"
	StatusNoData      = "No data"
)

// ProfileNames lists the catalog profile names.
type ProfileNames struct {
	AlumProfiles  []string `json:"alum_profiles"`
	SteelProfiles []string `json:"steel_profiles"`
}

// ProfileData carries the full catalog records, keyed inside each record
// by profile_name.
type ProfileData struct {
	AlumProfiles  []map[string]any `json:"alum_profiles_data"`
	SteelProfiles []map[string]any `json:"steel_profiles_data"`
}

// WindLocation is one [name, speed] pair of the location table. Speed keeps
// the collaborator's numeral text.
type WindLocation struct {
	Name  string
	Speed string
}

func (w *WindLocation) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("wind location: expected [name, speed], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &w.Name); err != nil {
		return fmt.Errorf("wind location name: %w", err)
	}
	raw := strings.TrimSpace(string(pair[1]))
	if s, err := strconv.Unquote(raw); err == nil {
		raw = s
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("wind location %q: speed %s is not a number", w.Name, pair[1])
	}
	w.Speed = raw
	return nil
}

func (w WindLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Name, json.Number(w.Speed)})
}

type windLocationsResponse struct {
	Locations []WindLocation `json:"locations"`
}

type calcRequest struct {
	ItemType string         `json:"item_type"`
	Payload  map[string]any `json:"payload"`
}

type saveProfileRequest struct {
	ProfileType string         `json:"profile_type"`
	Profile     map[string]any `json:"profile"`
}

type windRequest struct {
	Wind map[string]any `json:"wind"`
}

type documentRequest struct {
	DocumentText string `json:"document_text"`
}

// Result is a calc_preview or wind_preview response.
type Result struct {
	Success bool           `json:"success"`
	HTML    string         `json:"html,omitempty"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Status is the text to show when the result carries no HTML.
func (r *Result) Status() string {
	switch {
	case r == nil:
		return StatusError
	case !r.Success && r.Error != "":
		return r.Error
	case !r.Success:
		return StatusFailed
	case r.HTML == "":
		return StatusNoData
	}
	return ""
}

// Figure is one chart image the report needs.
type Figure struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Exists   bool   `json:"exists"`
}

type figuresResponse struct {
	Success bool     `json:"success"`
	Figures []Figure `json:"figures"`
	Error   string   `json:"error,omitempty"`
}
