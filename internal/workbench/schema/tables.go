package schema

import "github.com/facadeworks/facade-workbench/internal/workbench/domain"

var (
	gradeOptions   = []string{"FT", "HS", "AN"}
	supportOptions = []string{"Four Edges", "Three Edges", "Two Edges", "One Edge", "Point Fixed"}
)

// SupportFourEdges is the only support condition the deflection chart
// regression applies to.
const SupportFourEdges = "Four Edges"

var glassAttrs = map[string]Attribute{
	"length":          num("length", "Glass Length, L (mm)"),
	"width":           num("width", "Glass Width, B (mm)"),
	"thickness":       num("thickness", "Thickness (mm)"),
	"thickness1":      num("thickness1", "Outer Panel Thickness (mm)"),
	"thickness2":      num("thickness2", "Inner Panel Thickness (mm)"),
	"thickness1_1":    num("thickness1_1", "1st Lite Thickness of Outer panel (mm)"),
	"thickness1_2":    num("thickness1_2", "2nd Lite Thickness of Outer panel (mm)"),
	"thickness_inner": num("thickness_inner", "Interlayer Thickness (mm)"),
	"chart_thickness": num("chart_thickness", "Chart Thickness (mm)"),
	"grade":           enum("grade", "Glass Grade", gradeOptions...),
	"grade1":          enum("grade1", "Glass Grade", gradeOptions...),
	"grade2":          enum("grade2", "Glass Grade", gradeOptions...),
	"support_type":    enum("support_type", "Support Type", supportOptions...),
	"wind_load":       num("wind_load", "Wind Load (kPa)"),
	"def_criteria":    num("def_criteria", "Deflection Criteria (Default x = 60), B/x"),
	"gap":             num("gap", "Gap Between Panels (mm)"),
	"nfl":             num("nfl", "Non-factored Load, NFL (kPa)"),
	"nfl1":            num("nfl1", "Non-factored Load of Outer Panel, NFL1 (kPa)"),
	"nfl2":            num("nfl2", "Non-factored Load of Inner Panel, NFL2 (kPa)"),
	"load_x_area2":    num("load_x_area2", "Load × Area² (kNm²)"),
	"load1_x_area2":   num("load1_x_area2", "Load × Area² (kNm²)"),
	"load2_x_area2":   num("load2_x_area2", "Load × Area² (kNm²)"),
	"def":             num("def", "Deflection (mm)"),
	"def1":            num("def1", "Outer Panel Deflection (mm)"),
	"def2":            num("def2", "Inner Panel Deflection (mm)"),
}

var glassFields = map[domain.GlassType][]string{
	domain.GlassSGU: {
		"length", "width", "thickness", "grade", "support_type", "wind_load", "def_criteria",
		"nfl", "load_x_area2", "def",
	},
	domain.GlassDGU: {
		"length", "width", "thickness1", "gap", "thickness2", "grade1", "grade2", "support_type",
		"wind_load", "def_criteria", "nfl1", "nfl2", "load1_x_area2", "load2_x_area2", "def1", "def2",
	},
	domain.GlassLGU: {
		"length", "width", "thickness1", "thickness_inner", "thickness2", "chart_thickness", "grade",
		"support_type", "wind_load", "def_criteria", "nfl", "load_x_area2", "def",
	},
	domain.GlassLDGU: {
		"length", "width", "thickness1_1", "thickness_inner", "thickness1_2", "chart_thickness", "gap",
		"thickness2", "grade1", "grade2", "support_type", "wind_load", "def_criteria", "nfl1", "nfl2",
		"load1_x_area2", "load2_x_area2", "def1", "def2",
	},
}

var alumAttrs = map[string]Attribute{
	"profile_name":  text("profile_name", "Profile Name"),
	"web_length":    num("web_length", "Web Length (mm)"),
	"flange_length": num("flange_length", "Flange Length (mm)"),
	"web_thk":       num("web_thk", "Web Thickness (mm)"),
	"flange_thk":    num("flange_thk", "Flange Thickness (mm)"),
	"tor_constant":  num("tor_constant", "Torsional Constant (mm⁴)"),
	"area":          num("area", "Area (mm²)"),
	"I_xx":          num("I_xx", "Major Moment of Inertia, Ixx (mm⁴)"),
	"I_yy":          num("I_yy", "Minor Moment of Inertia, Iyy (mm⁴)"),
	"Y":             num("Y", "Extreme Fibre Distance, Y (mm)"),
	"X":             num("X", "Extreme Fibre Distance, X (mm)"),
	"plastic_x":     num("plastic_x", "Upper Region Centroid Distance, Plastic X (mm)"),
	"plastic_y":     num("plastic_y", "Lower Region Centroid Distance, Plastic Y (mm)"),
	"F_y":           num("F_y", "Yield Strength, Fy (MPa)"),
	"Mn_yield":      num("Mn_yield", "Moment Capacity by Yielding, Mn (kNm)"),
	"Mn_lb":         num("Mn_lb", "Moment Capacity by Local Buckling, Mn (kNm)"),
}

var alumFields = map[domain.ProfileType][]string{
	domain.ProfileManual: {
		"profile_name", "web_length", "flange_length", "web_thk", "flange_thk", "tor_constant", "area",
		"I_xx", "I_yy", "Y", "X", "plastic_x", "plastic_y", "F_y", "Mn_yield", "Mn_lb",
	},
	domain.ProfilePredefined: {"profile_name"},
	domain.ProfileStick:      {"profile_name", "web_length", "flange_length", "web_thk", "flange_thk", "F_y"},
}

var steelAttributes = []Attribute{
	text("profile_name", "Profile Name"),
	num("web_length", "Web Length (mm)"),
	num("flange_length", "Flange Length (mm)"),
	num("thk", "Wall Thickness (mm)"),
}

var frameAttrs = map[string]Attribute{
	"mullion":       catalog("mullion", "Mullion Name", CatalogMullions),
	"steel":         catalog("steel", "Embedded Steel Tube", CatalogSteelProfiles),
	"transom":       catalog("transom", "Transom Name", CatalogTransoms),
	"length":        num("length", "Mullion Length (mm)"),
	"width":         num("width", "Transom Length (mm)"),
	"tran_spacing":  num("tran_spacing", "Transom Spacing (mm)"),
	"glass_thk":     num("glass_thk", "Glass Thickness (mm)"),
	"wind_pos":      num("wind_pos", "Wind Load (+ve) (kPa)"),
	"wind_neg":      num("wind_neg", "Wind Load (-ve) (kPa)"),
	"mul_mu":        num("mul_mu", "Mullion Max. Moment, Mu (kNm)"),
	"mul_vu":        num("mul_vu", "Mullion Max. Shear, Vu (kN)"),
	"mul_def":       num("mul_def", "Mullion Max. Deflection, δ (mm)"),
	"tran_mu":       num("tran_mu", "Transom Max. Moment, Mu (kNm)"),
	"tran_vu":       num("tran_vu", "Transom Max. Shear, Vu (kN)"),
	"tran_def_wind": num("tran_def_wind", "Transom Max. Deflection (wind), δw (mm)"),
	"tran_def_dead": num("tran_def_dead", "Transom Max. Deflection (dead), δd (mm)"),
	"joint_fy":      num("joint_fy", "Horizontal Joint Force, fy (kN)"),
	"joint_fz":      num("joint_fz", "Vertical Joint Force, fz (kN)"),
	"reaction_Ry":   num("reaction_Ry", "Horizontal Reaction, Ry (kN)"),
	"reaction_Rz":   num("reaction_Rz", "Vertical Reaction, Rz (kN)"),
}

var (
	frameRegular   = []string{"length", "width", "tran_spacing", "glass_thk", "wind_pos", "wind_neg"}
	frameIrregular = []string{
		"mul_mu", "mul_vu", "mul_def", "tran_mu", "tran_vu", "tran_def_wind", "tran_def_dead",
		"joint_fy", "joint_fz", "reaction_Ry", "reaction_Rz",
	}
)

// frameFields lays out mullion, the optional steel tube, transom and the
// geometry-dependent inputs.
func frameFields(v domain.FrameVariant) []string {
	out := []string{"mullion"}
	if v.MullionType == domain.MullionAluminumSteel {
		out = append(out, "steel")
	}
	out = append(out, "transom")
	out = append(out, frameRegular...)
	if v.Geometry == domain.GeometryIrregular {
		out = append(out, frameIrregular...)
	}
	return out
}

var connectionAttributes = []Attribute{
	num("screw_nos", "No. of Screws, n"),
	num("screw_dia", "Screw Diameter, d (mm)"),
	num("screw_edge_dist", "Screw Edge Distance, e (mm)"),
	num("screw_spacing", "Screw Spacing, s (mm)"),
	num("cleat_thk", "Cleat Thickness, t (mm)"),
	num("cleat_fy", "Cleat Yield Strength, Fy (MPa)"),
}

var anchorageAttrs = map[string]Attribute{
	"anchor_nos":        num("anchor_nos", "No. of Anchor bolt, n"),
	"top_anchor_nos":    num("top_anchor_nos", "No. of Top Anchor bolt, n"),
	"front_anchor_nos":  num("front_anchor_nos", "No. of Front Anchor bolt, n"),
	"anchor_dia":        num("anchor_dia", "Diameter of Anchor bolt, da (mm)"),
	"embed_depth":       num("embed_depth", "Embed. Depth of Anchor, hef (mm)"),
	"C_a1":              num("C_a1", "Edge Distance, Ca1 (mm)"),
	"top_C_a1":          num("top_C_a1", "Edge Distance of Top Anchor, Ca1 (mm)"),
	"front_C_a1":        num("front_C_a1", "Edge Distance for Front Anchor, Ca1 (mm)"),
	"h_a":               num("h_a", "Depth of Concrete Member, ha (mm)"),
	"thr_bolt_dia":      num("thr_bolt_dia", "Diameter of Through bolt, db (mm)"),
	"fin_thk":           num("fin_thk", "Thickness of Fin Plate (mm)"),
	"fin_e":             num("fin_e", "Eccentricity, e (mm)"),
	"top_bp_length_N":   num("top_bp_length_N", "Length of Top Base Plate, N (mm)"),
	"front_bp_length_N": num("front_bp_length_N", "Length of Front Base Plate, N (mm)"),
	"top_bp_width_B":    num("top_bp_width_B", "Depth of Top Base Plate, H (mm)"),
	"front_bp_width_B":  num("front_bp_width_B", "Width of Front Base Plate, B (mm)"),
	"bp_thk":            num("bp_thk", "Thickness of Base Plate, t (mm)"),
}

var anchorageFields = map[domain.ClumpType][]string{
	domain.ClumpBox: {"bp_thk", "anchor_nos", "anchor_dia", "embed_depth", "C_a1", "h_a"},
	domain.ClumpU: {
		"bp_thk", "fin_thk", "fin_e", "anchor_nos", "anchor_dia", "embed_depth", "C_a1", "thr_bolt_dia",
	},
	domain.ClumpL: {
		"front_bp_length_N", "front_bp_width_B", "top_bp_width_B", "bp_thk", "fin_thk", "fin_e",
		"top_anchor_nos", "anchor_dia", "embed_depth", "front_C_a1", "top_C_a1", "h_a", "thr_bolt_dia",
	},
}

// anchorageDefaults are applied to a fresh anchorage record; keys missing
// from the clump's schema are skipped.
var anchorageDefaults = map[domain.ClumpType]map[string]string{
	domain.ClumpBox: {
		"anchor_nos": "4", "anchor_dia": "12", "embed_depth": "70", "C_a1": "150", "h_a": "150", "bp_thk": "5",
	},
	domain.ClumpU: {
		"anchor_nos": "4", "anchor_dia": "12", "embed_depth": "70", "C_a1": "60", "thr_bolt_dia": "10",
		"fin_thk": "5", "fin_e": "70", "bp_thk": "6",
	},
	domain.ClumpL: {
		"top_anchor_nos": "2", "front_anchor_nos": "2", "anchor_dia": "12", "embed_depth": "70",
		"top_C_a1": "150", "front_C_a1": "60", "h_a": "150", "top_bp_length_N": "250",
		"top_bp_width_B": "250", "front_bp_length_N": "250", "front_bp_width_B": "150", "bp_thk": "6",
		"thr_bolt_dia": "10", "fin_thk": "5", "fin_e": "70",
	},
}

// Wind rigidity classes.
const (
	RigidityRigid    = "Rigid"
	RigidityFlexible = "Flexible"
)

var windAttributes = []Attribute{
	catalog("location", "Location", CatalogWindLocations),
	num("wind_speed", "Basic Wind Speed, V (m/s)"),
	enum("exposure_cat", "Exposure Category", "B", "A", "C"),
	num("b_length", "Building Length, L (m)"),
	num("b_width", "Building Width, B (m)"),
	num("b_height", "Building Height, h (m)"),
	text("b_floor_heights", "Floor Heights (m)"),
	enum("b_rigidity", "Building Rigidity", RigidityRigid, RigidityFlexible),
	num("b_freq", "Natural Frequency, n1 (Hz)"),
	num("damping", "Damping Ratio, β"),
	num("gust_factor", "Gust Factor, G"),
	num("C_pw", "Windward Pressure Coefficient, Cpw"),
	num("C_pl", "Leeward Pressure Coefficient, Cpl"),
	num("C_ps", "Side Wall Pressure Coefficient, Cps"),
	flag("auto_load", "Apply Wind Load Automatically"),
	text("note", "Note"),
}

var windDefaults = map[string]string{"auto_load": No}

var projectInfoAttributes = []Attribute{
	text("project_name", "Project Name"),
	text("project_location", "Project Location"),
	text("client_name", "Client"),
	text("designed_by", "Designed By"),
	text("checked_by", "Checked By"),
	text("date", "Date"),
	text("revision", "Revision"),
}

var includeAttributes = []Attribute{
	flag("wind", "Wind Analysis"),
	flag("profiles", "Profiles"),
	flag("glass", "Glass Units"),
	flag("frames", "Frames"),
	flag("connections", "Connections"),
	flag("anchorage", "Anchorage"),
	flag("summary", "Summary"),
}

var includeDefaults = map[string]string{
	"wind": Yes, "profiles": Yes, "glass": Yes, "frames": Yes, "connections": Yes, "anchorage": Yes, "summary": Yes,
}
