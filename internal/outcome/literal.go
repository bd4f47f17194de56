package outcome

import "strings"

// LiteralOutcome is a bucket of the exact-label vocabulary
type LiteralOutcome string

const (
	LiteralRevocadas        LiteralOutcome = "revocadas"
	LiteralRevocadasParcial LiteralOutcome = "revocadas_parcialmente"
	LiteralConfirmadas      LiteralOutcome = "confirmadas"
	LiteralSinRecursos      LiteralOutcome = "no_se_interpusieron_recursos"
	LiteralAnulaDeOficio    LiteralOutcome = "anula_de_oficio"
	LiteralConciliacion     LiteralOutcome = "conciliacion"
	LiteralAvenimiento      LiteralOutcome = "avenimiento"
	LiteralDesistimiento    LiteralOutcome = "desistimiento"
	LiteralOtras            LiteralOutcome = "otras"
)

// vocabulary holds the labels exactly as the collectors write them
var vocabulary = map[string]LiteralOutcome{
	"Revoca":                       LiteralRevocadas,
	"Revoca parcial":               LiteralRevocadasParcial,
	"Confirma":                     LiteralConfirmadas,
	"No se interpusieron recursos": LiteralSinRecursos,
	"Anula de oficio":              LiteralAnulaDeOficio,
	"Conciliación":                 LiteralConciliacion,
	"Avenimiento":                  LiteralAvenimiento,
	"Desistimiento":                LiteralDesistimiento,
}

// Literal matches text against the fixed vocabulary. Only surrounding
// whitespace is ignored; case and accents must match.
func Literal(text string) LiteralOutcome {
	if o, ok := vocabulary[strings.TrimSpace(text)]; ok {
		return o
	}
	return LiteralOtras
}
