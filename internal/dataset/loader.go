// Package dataset loads the collector snapshots into typed rows.
package dataset

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/textutil"
	"github.com/JustJay7/tdlc-stats/pkg/logger"
)

const (
	HearingsDataset         = "hearings"
	RegistryDataset         = "registry"
	DetailDataset           = "detail"
	DailyCasesDataset       = "daily_cases"
	DailyProceedingsDataset = "daily_proceedings"
)

// Paths locates each dataset on disk
type Paths struct {
	Hearings         string
	Registry         string
	Detail           string
	DailyCases       string
	DailyProceedings string
}

// Snapshot is the three core tables read at one point in time
type Snapshot struct {
	Hearings []domain.HearingRecord
	Registry []domain.CaseIdentity
	Details  []domain.ProceduralDetail
}

// Loader reads datasets from disk. It holds no state between calls, so every
// query sees whatever the collectors last committed.
type Loader struct {
	paths  Paths
	logger *logger.Logger
}

// NewLoader creates a loader for the given paths
func NewLoader(paths Paths, log *logger.Logger) *Loader {
	return &Loader{paths: paths, logger: log}
}

// LoadSnapshot reads the hearing calendar, the registry and the detail ledger
// concurrently. Any missing file fails the whole snapshot.
func (l *Loader) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := l.LoadHearings(gctx)
		snap.Hearings = rows
		return err
	})
	g.Go(func() error {
		rows, err := l.LoadRegistry(gctx)
		snap.Registry = rows
		return err
	})
	g.Go(func() error {
		rows, err := l.LoadDetails(gctx)
		snap.Details = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// LoadLedger reads only the registry and the detail ledger. Queries that
// never touch hearings use it so a missing calendar does not fail them.
func (l *Loader) LoadLedger(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := l.LoadRegistry(gctx)
		snap.Registry = rows
		return err
	})
	g.Go(func() error {
		rows, err := l.LoadDetails(gctx)
		snap.Details = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// LoadHearings reads the hearing calendar
func (l *Loader) LoadHearings(ctx context.Context) ([]domain.HearingRecord, error) {
	t, err := l.open(ctx, HearingsDataset, l.paths.Hearings, false)
	if err != nil {
		return nil, err
	}

	hearings := make([]domain.HearingRecord, 0, len(t.rows))
	for _, row := range t.rows {
		hearings = append(hearings, domain.HearingRecord{
			Role:        textutil.NormalizeKey(t.get(row, "rol")),
			Date:        domain.ParseDate(t.get(row, "fecha")),
			Time:        t.get(row, "hora"),
			CaseTitle:   t.get(row, "caratula"),
			HearingType: t.get(row, "tipo_audiencia"),
			Status:      t.get(row, "estado"),
			Resolution:  t.get(row, "doc_resolucion"),
		})
	}
	return hearings, nil
}

// LoadRegistry reads the role to case id registry. The file is append-only,
// so a role seen twice keeps its latest row at its first position.
func (l *Loader) LoadRegistry(ctx context.Context) ([]domain.CaseIdentity, error) {
	t, err := l.open(ctx, RegistryDataset, l.paths.Registry, true)
	if err != nil {
		return nil, err
	}

	registry := make([]domain.CaseIdentity, 0, len(t.rows))
	seen := make(map[string]int, len(t.rows))
	for _, row := range t.rows {
		identity := domain.CaseIdentity{
			Role:          textutil.NormalizeKey(t.get(row, "rol")),
			CaseID:        textutil.NormalizeKey(t.get(row, "idcausa")),
			ProcedureType: t.get(row, "procedimiento"),
			FilingDate:    domain.ParseDate(t.get(row, "fecha_ingreso")),
			Description:   t.get(row, "descripcion"),
			Link:          t.get(row, "link"),
		}
		if identity.Role == "" {
			continue
		}
		if i, dup := seen[identity.Role]; dup {
			registry[i] = identity
			continue
		}
		seen[identity.Role] = len(registry)
		registry = append(registry, identity)
	}
	return registry, nil
}

// LoadDetails reads the procedural detail ledger, one row per case id with
// the latest row winning.
func (l *Loader) LoadDetails(ctx context.Context) ([]domain.ProceduralDetail, error) {
	t, err := l.open(ctx, DetailDataset, l.paths.Detail, false)
	if err != nil {
		return nil, err
	}

	details := make([]domain.ProceduralDetail, 0, len(t.rows))
	seen := make(map[string]int, len(t.rows))
	for _, row := range t.rows {
		detail := domain.ProceduralDetail{
			Role:              textutil.NormalizeKey(t.get(row, "rol")),
			CaseID:            textutil.NormalizeKey(t.get(row, "idCausa", "idcausa")),
			FirstFilingDate:   domain.ParseDate(t.get(row, "fecha_primer_tramite")),
			RulingDetected:    parseBool(t.get(row, "fallo_detectado")),
			RulingReference:   t.get(row, "referencia_fallo"),
			RulingDate:        domain.ParseDate(t.get(row, "fecha_fallo")),
			RulingLink:        t.get(row, "link_fallo"),
			AppealDetected:    parseBool(t.get(row, "reclamo_detectado")),
			AppealDate:        domain.ParseDate(t.get(row, "fecha_reclamo")),
			AppealLink:        t.get(row, "link_reclamo"),
			AppealOutcomeText: t.get(row, "Estado reclamación", "Estado reclamacion", "estado_reclamacion"),
			SpecificCaseType:  t.get(row, "tipo_causa_especifica"),
			CaseClosed:        parseBool(t.get(row, "causa_terminada")),
		}

		key := detail.CaseID
		if key == "" {
			key = "rol:" + detail.Role
		}
		if i, dup := seen[key]; dup {
			details[i] = detail
			continue
		}
		seen[key] = len(details)
		details = append(details, detail)
	}
	return details, nil
}

// LoadDailyCases reads the daily docket summary
func (l *Loader) LoadDailyCases(ctx context.Context) ([]domain.DailyCase, error) {
	t, err := l.open(ctx, DailyCasesDataset, l.paths.DailyCases, false)
	if err != nil {
		return nil, err
	}

	cases := make([]domain.DailyCase, 0, len(t.rows))
	for _, row := range t.rows {
		cases = append(cases, domain.DailyCase{
			Date:        t.get(row, "fecha_estado_diario"),
			Role:        textutil.NormalizeKey(t.get(row, "rol")),
			Description: t.get(row, "descripcion"),
			Proceedings: t.get(row, "tramites"),
			Link:        t.get(row, "link"),
		})
	}
	return cases, nil
}

// LoadDailyProceedings reads every proceeding published in the daily docket
func (l *Loader) LoadDailyProceedings(ctx context.Context) ([]domain.DailyProceeding, error) {
	t, err := l.open(ctx, DailyProceedingsDataset, l.paths.DailyProceedings, false)
	if err != nil {
		return nil, err
	}

	proceedings := make([]domain.DailyProceeding, 0, len(t.rows))
	for _, row := range t.rows {
		proceedings = append(proceedings, domain.DailyProceeding{
			CaseID:        textutil.NormalizeKey(t.get(row, "idCausa")),
			Role:          textutil.NormalizeKey(t.get(row, "rol")),
			Type:          t.get(row, "TipoTramite"),
			Date:          t.get(row, "Fecha"),
			Reference:     t.get(row, "Referencia"),
			Folio:         t.get(row, "Foja"),
			DownloadLink:  t.get(row, "Link_Descarga"),
			HasDetails:    t.get(row, "Tiene_Detalles"),
			HasSignatures: t.get(row, "Tiene_Firmantes"),
		})
	}
	return proceedings, nil
}

func (l *Loader) open(ctx context.Context, name, path string, foldHeaders bool) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	if path == "" {
		return nil, domain.NewDatasetUnavailableError(name, path, fmt.Errorf("no path configured"))
	}

	t, err := readTable(name, path, foldHeaders)
	if err != nil {
		return nil, err
	}

	if t.malformed > 0 {
		l.logger.Warn("Recovered malformed rows",
			"dataset", name,
			"kind", domain.ErrMalformedRow.Error(),
			"malformed", t.malformed,
			"rows", len(t.rows),
		)
	}
	l.logger.Debug("Dataset loaded", "dataset", name, "rows", len(t.rows))
	return t, nil
}
