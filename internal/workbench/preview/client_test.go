package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, RatePerSec: 1000, Burst: 100})
}

func TestClient_Catalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/get_profile_names":
			w.Write([]byte(`{"alum_profiles":["M-125","T-60"],"steel_profiles":["RHS 100x50"]}`))
		case "/get_profile_data":
			w.Write([]byte(`{"alum_profiles_data":[{"profile_name":"M-125","I_xx":1200000,"phi_Mn":3.2}],"steel_profiles_data":[]}`))
		case "/get_wind_locations":
			w.Write([]byte(`{"locations":[["Dhaka",65.7],["Chittagong","80"]]}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	names, err := c.ProfileNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"M-125", "T-60"}, names.AlumProfiles)
	assert.Equal(t, []string{"RHS 100x50"}, names.SteelProfiles)

	data, err := c.ProfileData(ctx)
	require.NoError(t, err)
	require.Len(t, data.AlumProfiles, 1)
	assert.Equal(t, 3.2, data.AlumProfiles[0]["phi_Mn"])

	locs, err := c.WindLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []WindLocation{{"Dhaka", "65.7"}, {"Chittagong", "80"}}, locs)
}

func TestClient_CalcPreview(t *testing.T) {
	var got calcRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calc_preview", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.ItemType == "frame" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":"Mullion not found"}`))
			return
		}
		w.Write([]byte(`{"success":true,"html":"<table></table>","result":{"Mn_yield":4.1}}`))
	})

	res, err := c.CalcPreview(context.Background(), "alum_profile", map[string]any{"profile_type": "Stick"})
	require.NoError(t, err)
	assert.Equal(t, "alum_profile", got.ItemType)
	assert.Equal(t, "Stick", got.Payload["profile_type"])
	assert.True(t, res.Success)
	assert.Equal(t, 4.1, res.Result["Mn_yield"])
	assert.Empty(t, res.Status())

	res, err = c.CalcPreview(context.Background(), "frame", map[string]any{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Mullion not found", res.Status())
}

func TestClient_ServerErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/generate_report":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"LaTeX failed"}`))
		case "/check_figures":
			w.Write([]byte(`{"success":false,"error":"inputs dir missing"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>bad gateway</html>`))
		}
	})
	ctx := context.Background()

	_, err := c.CalcPreview(ctx, "glass_unit", nil)
	assert.ErrorContains(t, err, "status 502")

	_, _, err = c.GenerateReport(ctx, "project_info: {}\n")
	assert.ErrorContains(t, err, "LaTeX failed")

	_, err = c.CheckFigures(ctx, "project_info: {}\n")
	assert.ErrorContains(t, err, "inputs dir missing")

	_, err = c.ProfileNames(ctx)
	assert.Error(t, err)
}

func TestClient_Documents(t *testing.T) {
	var got documentRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		switch r.URL.Path {
		case "/generate_summary_report":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("%PDF-1.7"))
		case "/preview_summary":
			w.Write([]byte("<h1>Summary</h1>"))
		case "/check_figures":
			w.Write([]byte(`{"success":true,"figures":[{"name":"wind.png","category":"Wind","exists":true}]}`))
		}
	})
	ctx := context.Background()

	pdf, ct, err := c.GenerateSummaryReport(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "doc", got.DocumentText)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)

	html, err := c.PreviewSummary(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Summary</h1>", html)

	figs, err := c.CheckFigures(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []Figure{{Name: "wind.png", Category: "Wind", Exists: true}}, figs)
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.WindPreview(ctx, map[string]any{"b_length": "30"})
	assert.Error(t, err)
}

func TestWindLocation_Unmarshal(t *testing.T) {
	var w WindLocation
	assert.Error(t, json.Unmarshal([]byte(`["Dhaka"]`), &w))
	assert.Error(t, json.Unmarshal([]byte(`["Dhaka","fast"]`), &w))
	require.NoError(t, json.Unmarshal([]byte(`["Sylhet", 61.1]`), &w))
	assert.Equal(t, WindLocation{"Sylhet", "61.1"}, w)

	b, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `["Sylhet", 61.1]`, string(b))
}

func TestResult_Status(t *testing.T) {
	var nilResult *Result
	assert.Equal(t, StatusError, nilResult.Status())
	assert.Equal(t, StatusFailed, (&Result{}).Status())
	assert.Equal(t, StatusNoData, (&Result{Success: true}).Status())
}
