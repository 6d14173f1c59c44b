package handlers

import (
	"github.com/gin-gonic/gin"

	"cotizador/internal/domain/reports"
	"cotizador/internal/http/v1/dto"
)

// ReportesHandler serves the quotation reporting endpoints.
type ReportesHandler struct {
	BaseHandler
	svc *reports.Service
}

func NewReportesHandler(svc *reports.Service) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Stats handles GET /cotizaciones/stats.
func (h *ReportesHandler) Stats(c *gin.Context) {
	h.OK(c, h.svc.GetStats(c.Request.Context()))
}

// Reporte handles GET /cotizaciones/reportes?desde=...&hasta=...
func (h *ReportesHandler) Reporte(c *gin.Context) {
	var q dto.ReporteQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rep, err := h.svc.GenerateSalesReport(c.Request.Context(), q.Desde, q.Hasta)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rep)
}

// Vencimiento handles GET /cotizaciones/vencimiento?dias=N.
func (h *ReportesHandler) Vencimiento(c *gin.Context) {
	dias := h.ParseIntQuery(c, "dias", reports.DefaultExpiryWindowDays)

	near, err := h.svc.GetNearExpiry(c.Request.Context(), dias)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, near)
}
