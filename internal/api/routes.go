package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, h *Handlers) {
	// Case statistics
	causas := router.Group("/causas")
	{
		causas.GET("/promedio-dias-audiencia-general", h.GeneralHearingToRuling)
		causas.GET("/promedio-dias-inicio-general", h.GeneralFilingToRuling)
		causas.GET("/promedio-dias-fallo", h.HearingToRuling)
		causas.GET("/promedio-dias-fallo-por-ingreso", h.HearingToRulingByFilingDate)
		causas.GET("/promedio-dias-desde-primer-tramite", h.FilingToRuling)
		causas.GET("/causas-esperando-fallo", h.PendingRulings)
		causas.GET("/evolucion-diaria-audiencia", h.DailyHearingSeries)
		causas.GET("/evolucion-diaria-inicio", h.DailyFilingSeries)
		causas.GET("/promedio-trimestral-audiencia", h.QuarterlyHearing)
		causas.GET("/promedio-trimestral-inicio", h.QuarterlyFiling)
		causas.GET("/total-causas", h.TotalCases)

		// Appeal outcomes
		causas.GET("/reclamaciones/porcentaje-revocadas", h.AppealOutcomes)
		causas.GET("/reclamaciones/revocaciones-trimestrales", h.QuarterlyAppeals)
	}

	router.GET("/calendario", h.Calendar)

	// Daily docket
	estado := router.Group("/estado-diario")
	{
		estado.GET("/causas-del-dia", h.CasesOfTheDay)
		estado.GET("/tramites-del-dia", h.ProceedingsOfTheDay)
	}

	// API routes
	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", h.HealthCheck)

		// Query audit log
		api.GET("/queries", h.ListQueries)
	}
}
