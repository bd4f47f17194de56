package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"partial revocation wins over revocation", "Se revoca parcialmente la sentencia", RevocaParcial},
		{"partial first", "Parcialmente revocada", RevocaParcial},
		{"revocation", "La Corte Suprema REVOCA la sentencia", Revoca},
		{"confirmation", "Confirma sentencia", Confirma},
		{"accented conciliation", "Conciliación aprobada", Conciliacion},
		{"conciliated", "Causa conciliado", Conciliacion},
		{"settlement", "Avenimiento", Avenimiento},
		{"settled", "Las partes han avenido", Avenimiento},
		{"no appeal filed", "No se interpusieron recursos", NoReclamacion},
		{"no appeal", "No hubo reclamación", NoReclamacion},
		{"not presented", "No presentó reclamación", NoReclamacion},
		{"pending", "Reclamación pendiente", ReclamacionPendiente},
		{"supreme court", "En Corte Suprema", ReclamacionPendiente},
		{"supreme court docket", "Rol N° 12.345-2021", ReclamacionPendiente},
		{"docket marker inside a word", "control nuevo", ReclamacionPendiente},
		{"empty", "", SinInfo},
		{"only whitespace", "   \t", SinInfo},
		{"only punctuation", "--", SinInfo},
		{"pandas null", "nan", SinInfo},
		{"anything else", "Desistimiento", Otra},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyTotality(t *testing.T) {
	valid := map[Category]bool{}
	for _, c := range Categories() {
		valid[c] = true
	}
	assert.Len(t, valid, 9)

	inputs := []string{
		"", " ", "nan", "Revoca", "revoca parcial", "confirma", "ÁÉÍÓÚ", "😀",
		"rol n", "12345", "pendiente de fallo", "no se interpuso", "Otra cosa",
		"revoca\nparcial", "CONCILIADO", "avenido", "\x00\xff",
	}
	for _, in := range inputs {
		got := Classify(in)
		assert.True(t, valid[got], "input %q classified as %q", in, got)
	}
}

func TestCountsAdd(t *testing.T) {
	c := NewCounts()
	assert.Len(t, c, len(Categories()))

	c.Add("Revoca")
	c.Add("revoca parcialmente")
	c.Add("")
	c.Add("")

	assert.Equal(t, 1, c[Revoca])
	assert.Equal(t, 1, c[RevocaParcial])
	assert.Equal(t, 2, c[SinInfo])
	assert.Equal(t, 0, c[Otra])
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		text string
		want LiteralOutcome
	}{
		{"Revoca", LiteralRevocadas},
		{" Revoca parcial ", LiteralRevocadasParcial},
		{"Confirma", LiteralConfirmadas},
		{"No se interpusieron recursos", LiteralSinRecursos},
		{"Anula de oficio", LiteralAnulaDeOficio},
		{"Conciliación", LiteralConciliacion},
		{"Avenimiento", LiteralAvenimiento},
		{"Desistimiento", LiteralDesistimiento},
		{"revoca", LiteralOtras},
		{"Conciliacion", LiteralOtras},
		{"", LiteralOtras},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.text))
		})
	}
}

// The two strategies answer different questions and must stay distinct.
func TestStrategiesDiverge(t *testing.T) {
	text := "Se revoca parcialmente la sentencia"
	assert.Equal(t, RevocaParcial, Classify(text))
	assert.Equal(t, LiteralOtras, Literal(text))

	assert.Equal(t, Revoca, Classify("revoca"))
	assert.Equal(t, LiteralOtras, Literal("revoca"))

	assert.Equal(t, Otra, Classify("Desistimiento"))
	assert.Equal(t, LiteralDesistimiento, Literal("Desistimiento"))
}
