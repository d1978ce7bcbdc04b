package cssgen

import "fmt"

// Kind selects one of the three output formats. Each kind pairs with
// its own independently ordered and named entry table. The set is
// closed: format dispatch happens once, at the boundary, never by
// string comparison inside the generators.
type Kind int

const (
	KindClass Kind = iota
	KindVariable
	KindUtility
)

// Kinds lists all kinds in display order.
func Kinds() []Kind {
	return []Kind{KindClass, KindVariable, KindUtility}
}

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindUtility:
		return "utility"
	default:
		return "class"
	}
}

// Title returns the human-facing label used by tabs and headings.
func (k Kind) Title() string {
	switch k {
	case KindVariable:
		return "Variables"
	case KindUtility:
		return "Utilities"
	default:
		return "Classes"
	}
}

// ParseKind maps a storage key or CLI flag value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "class", "classes":
		return KindClass, nil
	case "variable", "variables", "vars":
		return KindVariable, nil
	case "utility", "utilities":
		return KindUtility, nil
	}
	return KindClass, fmt.Errorf("unknown output kind %q (want class, variable or utility)", s)
}
