package cssgen

import (
	"fmt"
	"strings"
)

// EntryCSS is one table row with its computed clamp expression, in
// table order.
type EntryCSS struct {
	Name  string
	Clamp string
}

// Generate renders the complete CSS text for a kind. Generators are
// pure: the same entries and prefix always produce byte-identical text.
func Generate(kind Kind, entries []EntryCSS, prefix string) string {
	switch kind {
	case KindVariable:
		return generateVariables(entries, prefix)
	case KindUtility:
		return generateUtilities(entries)
	default:
		return generateClasses(entries, prefix)
	}
}

// GenerateSingle renders the CSS for exactly one entry, reusing the
// per-entry formatting of the bulk generators. Every block or
// declaration it emits appears byte-identically in the corresponding
// bulk output.
func GenerateSingle(kind Kind, e EntryCSS, prefix string) string {
	switch kind {
	case KindVariable:
		return variableDecl(e, prefix) + "\n"
	case KindUtility:
		return generateUtilities([]EntryCSS{e})
	default:
		return classBlock(e, prefix) + "\n"
	}
}

// --- Class kind ---

func generateClasses(entries []EntryCSS, prefix string) string {
	if len(entries) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, classBlock(e, prefix))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func classBlock(e EntryCSS, prefix string) string {
	return fmt.Sprintf(".%s-%s {\n  margin: %s;\n}", prefix, e.Name, e.Clamp)
}

// --- Variable kind ---

func generateVariables(entries []EntryCSS, prefix string) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, e := range entries {
		b.WriteString(variableDecl(e, prefix))
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

func variableDecl(e EntryCSS, prefix string) string {
	return fmt.Sprintf("  --%s-%s: %s;", prefix, e.Name, e.Clamp)
}

// --- Utility kind ---

// Utility class names are never prefixed; the naming-prefix parameter
// does not apply to this kind.

type utilityRule struct {
	abbrev string
	props  []string
}

var marginRules = []utilityRule{
	{"mt", []string{"margin-top"}},
	{"mb", []string{"margin-bottom"}},
	{"ml", []string{"margin-left"}},
	{"mr", []string{"margin-right"}},
	{"mx", []string{"margin-left", "margin-right"}},
	{"my", []string{"margin-top", "margin-bottom"}},
	{"m", []string{"margin"}},
}

var paddingRules = []utilityRule{
	{"pt", []string{"padding-top"}},
	{"pb", []string{"padding-bottom"}},
	{"pl", []string{"padding-left"}},
	{"pr", []string{"padding-right"}},
	{"px", []string{"padding-left", "padding-right"}},
	{"py", []string{"padding-top", "padding-bottom"}},
	{"p", []string{"padding"}},
}

var gapRules = []utilityRule{
	{"gap", []string{"gap"}},
	{"gap-x", []string{"column-gap"}},
	{"gap-y", []string{"row-gap"}},
}

// generateUtilities emits three labeled sections, each fully enumerated
// across all entries before the next begins.
func generateUtilities(entries []EntryCSS) string {
	if len(entries) == 0 {
		return ""
	}
	sections := []string{
		utilitySection("/* Margin utilities */", marginRules, entries),
		utilitySection("/* Padding utilities */", paddingRules, entries),
		utilitySection("/* Gap utilities */", gapRules, entries),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func utilitySection(label string, rules []utilityRule, entries []EntryCSS) string {
	blocks := make([]string, 0, len(entries)*len(rules)+1)
	blocks = append(blocks, label)
	for _, e := range entries {
		for _, r := range rules {
			blocks = append(blocks, utilityBlock(r, e))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func utilityBlock(r utilityRule, e EntryCSS) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".%s-%s {\n", r.abbrev, e.Name)
	for _, prop := range r.props {
		fmt.Fprintf(&b, "  %s: %s;\n", prop, e.Clamp)
	}
	b.WriteString("}")
	return b.String()
}
