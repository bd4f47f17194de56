package query

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/tdlc-stats/internal/dataset"
	"github.com/JustJay7/tdlc-stats/pkg/logger"
)

// TestCollectorSnapshots checks the engine's invariants against real
// collector output. Point TDLC_DATA_DIR at a data directory to run it.
func TestCollectorSnapshots(t *testing.T) {
	dir := os.Getenv("TDLC_DATA_DIR")
	if dir == "" || os.Getenv("SKIP_INTEGRATION_TESTS") == "true" || testing.Short() {
		t.Skip("Skipping integration test")
	}

	log, err := logger.NewLogger("debug", "text")
	require.NoError(t, err)

	svc := NewService(dataset.NewLoader(dataset.Paths{
		Hearings: filepath.Join(dir, "calendario_audiencias.csv"),
		Registry: filepath.Join(dir, "historic_data", "rol_idcausa.csv"),
		Detail:   filepath.Join(dir, "historic_data", "rol_idcausa_detalle_actualizado.csv"),
	}, log), log, "")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, tipo := range []string{"todos", "contencioso", "no contencioso"} {
		p := Params{Tipo: tipo}

		summary, err := svc.MeanDaysHearingToRuling(ctx, p)
		require.NoError(t, err)
		quarters, err := svc.QuarterlyMeanHearingToRuling(ctx, p)
		require.NoError(t, err)

		total := 0
		for _, q := range quarters {
			total += q.CaseCount
		}
		assert.Equal(t, summary.CaseCount, total, tipo)

		series, err := svc.DailyFilingToRulingSeries(ctx, p)
		require.NoError(t, err)
		for _, row := range series {
			assert.GreaterOrEqual(t, row.Days, 0, row.Role)
		}
		t.Logf("%s: %d hearing->ruling cases, %d filing->ruling cases", tipo, summary.CaseCount, len(series))
	}

	pending, err := svc.PendingRulingCases(ctx)
	require.NoError(t, err)
	for _, p := range pending {
		assert.GreaterOrEqual(t, p.EstimatedRemainingDays, 0, p.Role)
	}
}
