package domain

import "time"

// DateLayout is the dd-mm-yyyy format used by every dataset and every caller
const DateLayout = "02-01-2006"

// CaseIdentity is one registry row; Role is the natural key
type CaseIdentity struct {
	Role          string
	CaseID        string
	ProcedureType string
	FilingDate    *time.Time
	Description   string
	Link          string
}

// HearingRecord is one calendar row. Date is nil when the source date did not parse.
type HearingRecord struct {
	Role        string
	Date        *time.Time
	Time        string
	CaseTitle   string
	HearingType string
	Status      string
	Resolution  string
}

// ProceduralDetail is the per-case milestone ledger row
type ProceduralDetail struct {
	Role              string
	CaseID            string
	FirstFilingDate   *time.Time
	RulingDetected    bool
	RulingReference   string
	RulingDate        *time.Time
	RulingLink        string
	AppealDetected    bool
	AppealDate        *time.Time
	AppealLink        string
	AppealOutcomeText string
	SpecificCaseType  string
	CaseClosed        bool
}

// DailyCase is one row of the daily docket summary
type DailyCase struct {
	Date        string `json:"fecha_estado_diario"`
	Role        string `json:"rol"`
	Description string `json:"descripcion"`
	Proceedings string `json:"tramites"`
	Link        string `json:"link"`
}

// DailyProceeding is one proceeding published in the daily docket
type DailyProceeding struct {
	CaseID        string `json:"idCausa"`
	Role          string `json:"rol"`
	Type          string `json:"TipoTramite"`
	Date          string `json:"Fecha"`
	Reference     string `json:"Referencia"`
	Folio         string `json:"Foja"`
	DownloadLink  string `json:"Link_Descarga"`
	HasDetails    string `json:"Tiene_Detalles"`
	HasSignatures string `json:"Tiene_Firmantes"`
}

// FormatDate renders an optional date as dd-mm-yyyy, or "" when absent
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
