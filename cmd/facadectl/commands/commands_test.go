package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facadeworks/facade-workbench/internal/workbench/document"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
)

const sampleDoc = `project_info:
  project_name: Harbour View
categories:
- category_name: Podium
  glass_units:
  - glass_type: sgu
    length: 1200
    width: 1000
    wind_load: 1.5
    thickness: 6
    tint: bronze
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "", "validate", writeDoc(t))
	require.NoError(t, err)
	assert.Contains(t, out, "warning: ")
	assert.Contains(t, out, "Harbour View: 1 categories, 2 entities, 1 warnings")

	_, _, err = run(t, "", "validate", "--strict", writeDoc(t))
	assert.Error(t, err)

	_, _, err = run(t, "a: [1", "validate", "-")
	assert.Error(t, err)
}

func TestDerive(t *testing.T) {
	out, _, err := run(t, sampleDoc, "derive", "-")
	require.NoError(t, err)

	p, _, err := document.Decode(out, schema.New())
	require.NoError(t, err)
	g := p.Categories[0].GlassUnits[0]
	assert.Equal(t, "1.6", g.Attrs.Value("load_x_area2"))

	target := filepath.Join(t.TempDir(), "out.yaml")
	_, _, err = run(t, sampleDoc, "derive", "-", "-o", target)
	require.NoError(t, err)
	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, out, string(b))
}

func TestSchema(t *testing.T) {
	out, _, err := run(t, "", "schema", "anchorage", "U Clump")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "NAME"))

	_, _, err = run(t, "", "schema", "glass_unit", "Quad")
	assert.Error(t, err)
}

func TestReportAndCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate_report", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-full"))
	})
	mux.HandleFunc("/get_profile_names", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"alum_profiles":["M-125"],"steel_profiles":["S-1"]}`))
	})
	mux.HandleFunc("/get_wind_locations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"locations":[["Dhaka",65.7]]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	out, _, err := run(t, sampleDoc, "--service", srv.URL, "report", "-", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Harbour_View_report.pdf")
	b, err := os.ReadFile(filepath.Join(dir, "Harbour_View_report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-full", string(b))

	out, _, err = run(t, "", "--service", srv.URL, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "  M-125\n")
	assert.Contains(t, out, "  S-1\n")
	assert.Contains(t, out, "Dhaka\t65.7")
}
