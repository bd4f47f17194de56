package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/tdlc-stats/internal/config"
	"github.com/JustJay7/tdlc-stats/internal/database"
	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/query"
	"github.com/JustJay7/tdlc-stats/internal/ratelimit"
	"github.com/JustJay7/tdlc-stats/pkg/logger"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// Handlers holds all HTTP handlers
type Handlers struct {
	svc     *query.Service
	audit   *database.AuditStore
	limiter ratelimit.Limiter
	logger  *logger.Logger
	cfg     *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc *query.Service, audit *database.AuditStore, limiter ratelimit.Limiter, logger *logger.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		svc:     svc,
		audit:   audit,
		limiter: limiter,
		logger:  logger,
		cfg:     cfg,
	}
}

// serve runs one facade call, audits it and writes either the bare result
// or an error body
func (h *Handlers) serve(c *gin.Context, params interface{}, call func(ctx context.Context) (interface{}, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := call(ctx)

	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	h.record(c, params, start, status, err)

	if err != nil {
		h.logger.Warn("Query failed",
			"request_id", c.GetString(RequestIDKey),
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
		c.JSON(status, gin.H{
			"success": false,
			"error":   userMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) record(c *gin.Context, params interface{}, start time.Time, status int, err error) {
	encoded, _ := json.Marshal(params)

	// Create query log
	entry := &database.QueryLog{
		RequestID:  c.GetString(RequestIDKey),
		Endpoint:   c.FullPath(),
		Params:     string(encoded),
		Success:    err == nil,
		StatusCode: status,
		QueryTime:  start,
		DurationMs: time.Since(start).Milliseconds(),
		IPAddress:  c.ClientIP(),
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	// The audit log never fails the query itself
	if err := h.audit.Record(context.WithoutCancel(c.Request.Context()), entry); err != nil {
		h.logger.Error("Failed to save query log", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case domain.IsDatasetUnavailable(err):
		return http.StatusServiceUnavailable
	case domain.IsInvalidDateFilter(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.UserMessage()
	}
	return err.Error()
}

func bindParams(c *gin.Context) query.Params {
	return query.Params{
		FechaInicio: c.Query("fecha_inicio"),
		FechaFin:    c.Query("fecha_fin"),
		Tipo:        c.DefaultQuery("tipo", "todos"),
	}
}

// GeneralHearingToRuling returns the unfiltered hearing -> ruling mean
func (h *Handlers) GeneralHearingToRuling(c *gin.Context) {
	p := query.Params{Tipo: "todos"}
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.MeanDaysHearingToRuling(ctx, p)
	})
}

// GeneralFilingToRuling returns the unfiltered filing -> ruling mean
func (h *Handlers) GeneralFilingToRuling(c *gin.Context) {
	p := query.Params{Tipo: "todos"}
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.MeanDaysFilingToRuling(ctx, p)
	})
}

// HearingToRuling returns the hearing -> ruling mean windowed by ruling date
func (h *Handlers) HearingToRuling(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.MeanDaysHearingToRuling(ctx, p)
	})
}

// HearingToRulingByFilingDate returns the hearing -> ruling mean windowed by
// first filing date
func (h *Handlers) HearingToRulingByFilingDate(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.MeanDaysHearingToRulingByFilingDate(ctx, p)
	})
}

// FilingToRuling returns the filing -> ruling mean
func (h *Handlers) FilingToRuling(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.MeanDaysFilingToRuling(ctx, p)
	})
}

// PendingRulings lists cases awaiting a ruling
func (h *Handlers) PendingRulings(c *gin.Context) {
	h.serve(c, nil, func(ctx context.Context) (interface{}, error) {
		return h.svc.PendingRulingCases(ctx)
	})
}

// DailyHearingSeries lists hearing -> ruling days per case
func (h *Handlers) DailyHearingSeries(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.DailyHearingToRulingSeries(ctx, p)
	})
}

// DailyFilingSeries lists filing -> ruling days per case
func (h *Handlers) DailyFilingSeries(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.DailyFilingToRulingSeries(ctx, p)
	})
}

// QuarterlyHearing returns hearing -> ruling means per quarter
func (h *Handlers) QuarterlyHearing(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.QuarterlyMeanHearingToRuling(ctx, p)
	})
}

// QuarterlyFiling returns filing -> ruling means per quarter
func (h *Handlers) QuarterlyFiling(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.QuarterlyMeanFilingToRuling(ctx, p)
	})
}

// TotalCases counts known and ruled cases
func (h *Handlers) TotalCases(c *gin.Context) {
	h.serve(c, nil, func(ctx context.Context) (interface{}, error) {
		return h.svc.TotalCaseCount(ctx)
	})
}

// AppealOutcomes tallies appeal outcomes in the period
func (h *Handlers) AppealOutcomes(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.AppealOutcomeStatistics(ctx, p)
	})
}

// QuarterlyAppeals classifies appeal outcomes per quarter
func (h *Handlers) QuarterlyAppeals(c *gin.Context) {
	p := bindParams(c)
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.QuarterlyAppealStatistics(ctx, p)
	})
}

// Calendar lists scheduled hearings
func (h *Handlers) Calendar(c *gin.Context) {
	soloFuturas, err := strconv.ParseBool(c.DefaultQuery("solo_futuras", "true"))
	if err != nil {
		soloFuturas = true
	}
	p := query.CalendarParams{
		Desde:       c.Query("fecha_desde"),
		Hasta:       c.Query("fecha_hasta"),
		Tipos:       c.QueryArray("tipos"),
		SoloFuturas: soloFuturas,
		Busqueda:    c.Query("busqueda"),
	}
	h.serve(c, p, func(ctx context.Context) (interface{}, error) {
		return h.svc.HearingCalendar(ctx, p)
	})
}

// CasesOfTheDay returns the daily docket summary
func (h *Handlers) CasesOfTheDay(c *gin.Context) {
	h.serve(c, nil, func(ctx context.Context) (interface{}, error) {
		return h.svc.CasesOfTheDay(ctx)
	})
}

// ProceedingsOfTheDay returns the daily docket proceedings
func (h *Handlers) ProceedingsOfTheDay(c *gin.Context) {
	h.serve(c, nil, func(ctx context.Context) (interface{}, error) {
		return h.svc.ProceedingsOfTheDay(ctx)
	})
}

// ListQueries returns the audit log, newest first
func (h *Handlers) ListQueries(c *gin.Context) {
	// Get pagination parameters
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	logs, total, err := h.audit.List(c.Request.Context(), c.Query("endpoint"), page, limit)
	if err != nil {
		h.logger.Error("Failed to list query logs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to list query logs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    logs,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  h.audit.Healthy(c.Request.Context()),
		"ratelimit": h.limiter.Stats(),
		"time":      time.Now().Unix(),
	})
}
