// Command tdlcctl prints tribunal statistics as JSON straight from the
// dataset snapshots, without going through the HTTP API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JustJay7/tdlc-stats/internal/config"
	"github.com/JustJay7/tdlc-stats/internal/dataset"
	"github.com/JustJay7/tdlc-stats/internal/query"
	"github.com/JustJay7/tdlc-stats/pkg/logger"
)

const (
	chainHearing       = "audiencia"
	chainHearingFiling = "audiencia-ingreso"
	chainFiling        = "inicio"
)

// cli carries the state shared by every subcommand
type cli struct {
	out    io.Writer
	loadFn func() (*config.Config, error)
	svc    *query.Service
	log    *logger.Logger

	params query.Params
	chain  string
}

func main() {
	if err := newRootCmd(os.Stdout, config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, loadFn func() (*config.Config, error)) *cobra.Command {
	c := &cli{out: out, loadFn: loadFn}

	root := &cobra.Command{
		Use:          "tdlcctl",
		Short:        "Tribunal case statistics from the collector snapshots",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadFn()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			c.log, err = logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.svc = query.NewService(dataset.NewLoader(cfg.Datasets(), c.log), c.log, cfg.CaseLinkBaseURL)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	filterFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&c.params.FechaInicio, "desde", "", "start date, dd-mm-yyyy")
		cmd.Flags().StringVar(&c.params.FechaFin, "hasta", "", "end date, dd-mm-yyyy")
		cmd.Flags().StringVar(&c.params.Tipo, "tipo", "todos", "contencioso | no contencioso | todos")
	}
	chainFlag := func(cmd *cobra.Command, extra string) {
		usage := fmt.Sprintf("milestone chain: %s | %s%s", chainHearing, chainFiling, extra)
		cmd.Flags().StringVar(&c.chain, "cadena", chainHearing, usage)
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Mean days to ruling",
		RunE:  c.runSummary,
	}
	filterFlags(summaryCmd)
	chainFlag(summaryCmd, " | "+chainHearingFiling)

	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Days to ruling per case, ordered by ruling date",
		RunE:  c.runSeries,
	}
	filterFlags(seriesCmd)
	chainFlag(seriesCmd, "")

	quarterlyCmd := &cobra.Command{
		Use:   "quarterly",
		Short: "Mean days to ruling per quarter",
		RunE:  c.runQuarterly,
	}
	filterFlags(quarterlyCmd)
	chainFlag(quarterlyCmd, "")

	var byQuarter bool
	appealsCmd := &cobra.Command{
		Use:   "appeals",
		Short: "Appeal outcome statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if byQuarter {
				return c.print(c.svc.QuarterlyAppealStatistics(cmd.Context(), c.params))
			}
			return c.print(c.svc.AppealOutcomeStatistics(cmd.Context(), c.params))
		},
	}
	filterFlags(appealsCmd)
	appealsCmd.Flags().BoolVar(&byQuarter, "trimestral", false, "classify outcomes per quarter")

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "Cases heard and awaiting a ruling",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.print(c.svc.PendingRulingCases(cmd.Context()))
		},
	}

	totalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "Known cases and cases with a ruling",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.print(c.svc.TotalCaseCount(cmd.Context()))
		},
	}

	var cal query.CalendarParams
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Scheduled hearings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.print(c.svc.HearingCalendar(cmd.Context(), cal))
		},
	}
	calendarCmd.Flags().StringVar(&cal.Desde, "desde", "", "start date, dd-mm-yyyy")
	calendarCmd.Flags().StringVar(&cal.Hasta, "hasta", "", "end date, dd-mm-yyyy")
	calendarCmd.Flags().StringSliceVar(&cal.Tipos, "tipos", nil, "hearing types to keep")
	calendarCmd.Flags().BoolVar(&cal.SoloFuturas, "solo-futuras", true, "only hearings from today on")
	calendarCmd.Flags().StringVar(&cal.Busqueda, "busqueda", "", "substring of role or title")

	root.AddCommand(summaryCmd, seriesCmd, quarterlyCmd, appealsCmd, pendingCmd, totalsCmd, calendarCmd)
	return root
}

func (c *cli) runSummary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	switch c.chain {
	case chainHearing:
		return c.print(c.svc.MeanDaysHearingToRuling(ctx, c.params))
	case chainHearingFiling:
		return c.print(c.svc.MeanDaysHearingToRulingByFilingDate(ctx, c.params))
	case chainFiling:
		return c.print(c.svc.MeanDaysFilingToRuling(ctx, c.params))
	}
	return fmt.Errorf("unknown chain %q", c.chain)
}

func (c *cli) runSeries(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	switch c.chain {
	case chainHearing:
		return c.print(c.svc.DailyHearingToRulingSeries(ctx, c.params))
	case chainFiling:
		return c.print(c.svc.DailyFilingToRulingSeries(ctx, c.params))
	}
	return fmt.Errorf("unknown chain %q", c.chain)
}

func (c *cli) runQuarterly(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	switch c.chain {
	case chainHearing:
		return c.print(c.svc.QuarterlyMeanHearingToRuling(ctx, c.params))
	case chainFiling:
		return c.print(c.svc.QuarterlyMeanFilingToRuling(ctx, c.params))
	}
	return fmt.Errorf("unknown chain %q", c.chain)
}

// print writes v as indented JSON, or returns err untouched
func (c *cli) print(v interface{}, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
