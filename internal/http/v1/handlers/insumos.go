package handlers

import (
	"github.com/gin-gonic/gin"

	"cotizador/internal/domain/supplies"
	"cotizador/internal/http/v1/dto"
)

// InsumosHandler serves the supply catalog endpoints.
type InsumosHandler struct {
	BaseHandler
	svc *supplies.Service
}

func NewInsumosHandler(svc *supplies.Service) *InsumosHandler {
	return &InsumosHandler{svc: svc}
}

// List handles GET /insumos.
func (h *InsumosHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /insumos/:id.
func (h *InsumosHandler) Get(c *gin.Context) {
	supply, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, supply)
}

// Create handles POST /insumos.
func (h *InsumosHandler) Create(c *gin.Context) {
	var req dto.InsumoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// Update handles PUT /insumos/:id. The body is the full record; supply
// updates replace rather than patch.
func (h *InsumosHandler) Update(c *gin.Context) {
	var req dto.InsumoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /insumos/:id and returns the removed record.
func (h *InsumosHandler) Delete(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, removed)
}
