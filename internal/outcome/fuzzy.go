// Package outcome classifies appeal ("reclamación") outcome descriptions.
//
// Two strategies live here and they are not interchangeable. Classify maps
// free text onto a fixed taxonomy with ordered regular expressions. Literal
// only recognizes the exact labels the collectors write and is what the
// summary tally uses. They disagree on inputs such as "revoca parcialmente",
// which the fuzzy rules call revoca_parcial and the literal vocabulary
// leaves in "otras".
package outcome

import (
	"regexp"

	"github.com/JustJay7/tdlc-stats/internal/textutil"
)

// Category is a bucket of the fuzzy taxonomy
type Category string

const (
	RevocaParcial        Category = "revoca_parcial"
	Revoca               Category = "revoca"
	Confirma             Category = "confirma"
	Conciliacion         Category = "conciliacion"
	Avenimiento          Category = "avenimiento"
	NoReclamacion        Category = "no_reclamacion"
	ReclamacionPendiente Category = "reclamacion_pendiente"
	SinInfo              Category = "sin_info"
	Otra                 Category = "otra"
)

// Categories lists every fuzzy category in rule priority order
func Categories() []Category {
	return []Category{
		RevocaParcial, Revoca, Confirma, Conciliacion, Avenimiento,
		NoReclamacion, ReclamacionPendiente, SinInfo, Otra,
	}
}

type rule struct {
	pattern  *regexp.Regexp
	category Category
}

// Evaluated top to bottom on folded text; the first match wins.
var rules = []rule{
	{regexp.MustCompile(`revoca.*parcial|parcial.*revoca`), RevocaParcial},
	{regexp.MustCompile(`revoca`), Revoca},
	{regexp.MustCompile(`confirma`), Confirma},
	{regexp.MustCompile(`conciliacion|conciliado`), Conciliacion},
	{regexp.MustCompile(`avenimiento|avenido`), Avenimiento},
	{regexp.MustCompile(`no se interpus|no hubo reclamacion|no presento`), NoReclamacion},
	{regexp.MustCompile(`pendiente|corte suprema|rol n`), ReclamacionPendiente},
}

// Classify maps an outcome description to exactly one Category
func Classify(text string) Category {
	folded := textutil.FoldText(text)
	if isEmpty(folded) {
		return SinInfo
	}
	for _, r := range rules {
		if r.pattern.MatchString(folded) {
			return r.category
		}
	}
	return Otra
}

// Counts tallies fuzzy categories; every category is present, zero or not
type Counts map[Category]int

// NewCounts returns a tally with every category at zero
func NewCounts() Counts {
	c := make(Counts, len(Categories()))
	for _, cat := range Categories() {
		c[cat] = 0
	}
	return c
}

// Add classifies text and bumps its category
func (c Counts) Add(text string) Category {
	cat := Classify(text)
	c[cat]++
	return cat
}

// isEmpty also treats the null markers pandas writes into exported CSVs
func isEmpty(folded string) bool {
	switch folded {
	case "", "nan", "none", "null":
		return true
	}
	return false
}
