package document

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// Top-level and category keys in document order.
const (
	keyProjectInfo   = "project_info"
	keyInclude       = "include"
	keyWind          = "wind"
	keyAlumProfiles  = "alum_profiles"
	keySteelProfiles = "steel_profiles"
	keyCategories    = "categories"

	keyCategoryName = "category_name"
	keyGlassUnits   = "glass_units"
	keyFrames       = "frames"
	keyConnections  = "connections"
	keyAnchorage    = "anchorage"
)

// DefaultCategoryName names categories saved without a name.
const DefaultCategoryName = "Unnamed Category"

// Encode renders the project as document text.
func Encode(p *domain.Project) string {
	var b strings.Builder
	writeMapping(&b, projectTree(p), 0)
	return b.String()
}

func projectTree(p *domain.Project) *node {
	root := mapping()
	root.set(keyProjectInfo, recordNode(nil, recordOf(p.Info)))
	root.set(keyInclude, recordNode(nil, recordOf(p.Include)))
	if p.Wind != nil {
		root.set(keyWind, itemNode(p.Wind))
	} else {
		root.set(keyWind, mapping())
	}

	alum := sequence()
	for _, a := range p.AlumProfiles {
		alum.append(itemNode(a))
	}
	root.set(keyAlumProfiles, alum)

	steel := sequence()
	for _, s := range p.SteelProfiles {
		steel.append(itemNode(s))
	}
	root.set(keySteelProfiles, steel)

	cats := sequence()
	for _, c := range p.Categories {
		cats.append(categoryNode(c))
	}
	root.set(keyCategories, cats)
	return root
}

func recordOf(e *domain.Entity) *domain.Record {
	if e == nil {
		return nil
	}
	return e.Attrs
}

func categoryNode(c *domain.Category) *node {
	n := mapping()
	n.set(keyCategoryName, scalar(c.Name))
	n.set(keyGlassUnits, itemsNode(c.GlassUnits))
	n.set(keyFrames, itemsNode(c.Frames))
	n.set(keyConnections, itemsNode(c.Connections))
	n.set(keyAnchorage, itemsNode(c.Anchorages))
	return n
}

func itemsNode[T domain.Item](items []T) *node {
	seq := sequence()
	for _, it := range items {
		seq.append(itemNode(it))
	}
	return seq
}

func itemNode(it domain.Item) *node {
	return recordNode(it.Tags(), it.Base().Attrs)
}

// recordNode emits discriminants first, then attributes in schema order.
func recordNode(tags []domain.Tag, rec *domain.Record) *node {
	n := mapping()
	for _, t := range tags {
		n.set(t.Key, scalar(t.Value))
	}
	if rec != nil {
		for _, f := range rec.Fields() {
			n.set(f.Name, scalar(f.Value))
		}
	}
	return n
}

func writeMapping(b *strings.Builder, n *node, indent int) {
	pad := strings.Repeat("  ", indent)
	for i, key := range n.keys {
		v := n.vals[i]
		switch v.kind {
		case sequenceNode:
			fmt.Fprintf(b, "%s%s:\n", pad, key)
			items := v.items
			if len(items) == 0 {
				items = []*node{mapping()}
			}
			for _, it := range items {
				writeItem(b, it, indent)
			}
		case mappingNode:
			if len(v.keys) == 0 {
				fmt.Fprintf(b, "%s%s: {}\n", pad, key)
			} else {
				fmt.Fprintf(b, "%s%s:\n", pad, key)
				writeMapping(b, v, indent+1)
			}
			if indent == 0 {
				b.WriteString("\n")
			}
		default:
			if v.value == "" {
				fmt.Fprintf(b, "%s%s:\n", pad, key)
			} else {
				fmt.Fprintf(b, "%s%s: %s\n", pad, key, formatScalar(v.value, indent))
			}
		}
	}
}

func writeItem(b *strings.Builder, it *node, indent int) {
	pad := strings.Repeat("  ", indent)
	switch {
	case it.kind == mappingNode && len(it.keys) > 0:
		var sub strings.Builder
		writeMapping(&sub, it, indent+1)
		fmt.Fprintf(b, "%s- %s", pad, strings.TrimLeft(sub.String(), " "))
	case it.kind == scalarNode && it.value != "":
		fmt.Fprintf(b, "%s- %s\n", pad, formatScalar(it.value, indent))
	default:
		fmt.Fprintf(b, "%s- {}\n", pad)
	}
}

var needsQuoting = regexp.MustCompile(`[^a-zA-Z0-9.\s]`)

const maxPlainLength = 50

// nullWords read back as empty when written plain.
var nullWords = map[string]bool{"null": true, "Null": true, "NULL": true}

// formatScalar renders a non-empty value. Text with line breaks, "<br>"
// markers or ": " becomes a literal block indented one level below the key;
// long text or text with characters outside [A-Za-z0-9.\s] is single
// quoted; everything else is written plain.
func formatScalar(v string, indent int) string {
	if strings.Contains(v, "\n") || strings.Contains(v, "<br>") || strings.Contains(v, ": ") {
		if block, ok := literalBlock(v, indent+1); ok {
			return block
		}
		return doubleQuoted(v)
	}
	if !printable(v) || strings.ContainsRune(v, '\t') {
		return doubleQuoted(v)
	}
	if utf8.RuneCountInString(v) > maxPlainLength || needsQuoting.MatchString(v) || strings.TrimSpace(v) != v || nullWords[v] {
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return v
}

// literalBlock renders v as a "|" block scalar, clipped or stripped so the
// trailing line break survives. It declines values a block cannot carry
// losslessly, including more than one trailing line break.
func literalBlock(v string, indent int) (string, bool) {
	if !printable(strings.ReplaceAll(v, "\n", "")) {
		return "", false
	}
	body := strings.TrimRight(v, "\n")
	trailing := len(v) - len(body)
	if body == "" || trailing > 1 {
		return "", false
	}
	lines := strings.Split(body, "\n")
	for _, l := range lines {
		if l != "" {
			if l[0] == ' ' || l[0] == '\t' {
				return "", false
			}
			break
		}
	}
	for _, l := range lines {
		if l != "" && strings.TrimSpace(l) == "" {
			return "", false
		}
	}

	pad := strings.Repeat("  ", indent)
	var b strings.Builder
	if trailing == 1 {
		b.WriteString("|")
	} else {
		b.WriteString("|-")
	}
	for _, l := range lines {
		b.WriteString("\n")
		if l != "" {
			b.WriteString(pad)
			b.WriteString(l)
		}
	}
	return b.String(), true
}

func printable(s string) bool {
	for _, r := range s {
		if r == '\t' {
			continue
		}
		if !unicode.IsPrint(r) && r != ' ' {
			return false
		}
	}
	return true
}

// doubleQuoted writes a single-line YAML double-quoted scalar.
func doubleQuoted(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsPrint(r) || r == ' ' {
				b.WriteRune(r)
			} else if r <= 0xFFFF {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				fmt.Fprintf(&b, `\U%08X`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
