package handlers

import (
	"github.com/gin-gonic/gin"

	"cotizador/internal/domain/pricing"
	"cotizador/internal/domain/quotations"
	"cotizador/internal/http/v1/dto"
)

// CotizacionesHandler serves the quotation lifecycle endpoints.
type CotizacionesHandler struct {
	BaseHandler
	svc *quotations.Service
}

func NewCotizacionesHandler(svc *quotations.Service) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc}
}

// List handles GET /cotizaciones. Query parameters turn the listing into
// a filtered search.
func (h *CotizacionesHandler) List(c *gin.Context) {
	var q dto.SearchCotizacionesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	ctx := c.Request.Context()
	if q.HasFilters() {
		found, err := h.svc.Search(ctx, q.ToCriteria())
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, found)
		return
	}

	items, err := h.svc.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /cotizaciones/:id.
func (h *CotizacionesHandler) Get(c *gin.Context) {
	q, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// Create handles POST /cotizaciones.
func (h *CotizacionesHandler) Create(c *gin.Context) {
	var in quotations.CreateInput
	if !h.BindJSON(c, &in) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// Update handles PUT /cotizaciones/:id with a partial body.
func (h *CotizacionesHandler) Update(c *gin.Context) {
	var p quotations.Patch
	if !h.BindJSON(c, &p) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /cotizaciones/:id and returns the removed record.
func (h *CotizacionesHandler) Delete(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, removed)
}

// Export handles GET /cotizaciones/export.
func (h *CotizacionesHandler) Export(c *gin.Context) {
	var q dto.ExportCotizacionesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	doc, err := h.svc.Export(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cotizaciones.json"`)
	c.IndentedJSON(200, doc)
}

// Calcular handles POST /cotizaciones/calcular. It runs the pricing
// formula without persisting anything, so the client can preview totals
// while composing a quotation.
func (h *CotizacionesHandler) Calcular(c *gin.Context) {
	var req dto.CalcularRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := pricing.Calculate(req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
