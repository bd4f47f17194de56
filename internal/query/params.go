package query

import (
	"strings"
	"time"

	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/stats"
)

// Params are the filters shared by the statistics queries. Dates are
// dd-mm-yyyy; Tipo is "contencioso", "no contencioso" or "todos".
type Params struct {
	FechaInicio string `form:"fecha_inicio" json:"fecha_inicio,omitempty"`
	FechaFin    string `form:"fecha_fin" json:"fecha_fin,omitempty"`
	Tipo        string `form:"tipo" json:"tipo,omitempty"`
}

// filter drops any bound that does not parse
func (p Params) filter() stats.Filter {
	return stats.Filter{
		From:          domain.ParseDate(p.FechaInicio),
		To:            domain.ParseDate(p.FechaFin),
		ProcedureType: p.Tipo,
	}
}

// strictFilter rejects a bound that is present but does not parse
func (p Params) strictFilter() (stats.Filter, error) {
	from, err := strictDate("fecha_inicio", p.FechaInicio)
	if err != nil {
		return stats.Filter{}, err
	}
	to, err := strictDate("fecha_fin", p.FechaFin)
	if err != nil {
		return stats.Filter{}, err
	}
	return stats.Filter{From: from, To: to, ProcedureType: p.Tipo}, nil
}

// strictDate accepts only dd-mm-yyyy; the other layouts and the trailing
// time that dataset cells may carry are rejected here
func strictDate(field, value string) (*time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return nil, domain.NewInvalidDateFilterError(field, value)
	}
	return &d, nil
}
