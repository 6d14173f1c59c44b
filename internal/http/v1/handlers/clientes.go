package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cotizador/internal/core/apperror"
	"cotizador/internal/domain/clients"
	"cotizador/internal/http/v1/dto"
)

// ClientesHandler serves the client catalog endpoints.
type ClientesHandler struct {
	BaseHandler
	svc *clients.Service
}

func NewClientesHandler(svc *clients.Service) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// List handles GET /clientes. Query parameters turn the listing into a
// filtered search.
func (h *ClientesHandler) List(c *gin.Context) {
	var q dto.SearchClientesQuery
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

// Get handles GET /clientes/:id.
func (h *ClientesHandler) Get(c *gin.Context) {
	client, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, client)
}

// Create handles POST /clientes.
func (h *ClientesHandler) Create(c *gin.Context) {
	var req dto.CreateClienteRequest
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

// Update handles PUT /clientes/:id.
func (h *ClientesHandler) Update(c *gin.Context) {
	var req dto.UpdateClienteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /clientes/:id and returns the removed record.
func (h *ClientesHandler) Delete(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, removed)
}

// Stats handles GET /clientes/stats.
func (h *ClientesHandler) Stats(c *gin.Context) {
	h.OK(c, h.svc.GetStats(c.Request.Context()))
}

// Export handles GET /clientes/export and returns the catalog as an
// indented JSON attachment.
func (h *ClientesHandler) Export(c *gin.Context) {
	doc, err := h.svc.ExportJSON(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="clientes.json"`)
	c.Data(http.StatusOK, "application/json", []byte(doc))
}

// Import handles POST /clientes/import. The body is the same array shape
// Export produces.
func (h *ClientesHandler) Import(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		h.Error(c, apperror.NewValidation("unreadable request body").WithCause(err))
		return
	}

	result, err := h.svc.ImportJSON(c.Request.Context(), string(data))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
