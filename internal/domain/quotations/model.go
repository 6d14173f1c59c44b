// Package quotations provides the quotation (cotización) lifecycle manager.
//
// A quotation is a priced proposal for a client: a pricing breakdown, a
// list of supply line items, and a status that moves through its lifecycle
// stamping approval and completion dates exactly once.
package quotations

import (
	"strings"
)

// Estado is the lifecycle status of a quotation.
type Estado string

const (
	EstadoPendiente  Estado = "pendiente"
	EstadoAprobada   Estado = "aprobada"
	EstadoRechazada  Estado = "rechazada"
	EstadoEnProceso  Estado = "en_proceso"
	EstadoCompletada Estado = "completada"
	EstadoCancelada  Estado = "cancelada"
)

// Estados lists every valid status in display order.
var Estados = []Estado{
	EstadoPendiente,
	EstadoAprobada,
	EstadoRechazada,
	EstadoEnProceso,
	EstadoCompletada,
	EstadoCancelada,
}

// Valid reports whether the status is one of the known values.
func (e Estado) Valid() bool {
	switch e {
	case EstadoPendiente, EstadoAprobada, EstadoRechazada,
		EstadoEnProceso, EstadoCompletada, EstadoCancelada:
		return true
	}
	return false
}

// Terminal reports whether the status ends the lifecycle. Only relevant
// when strict transition checking is enabled.
func (e Estado) Terminal() bool {
	switch e {
	case EstadoRechazada, EstadoCompletada, EstadoCancelada:
		return true
	}
	return false
}

// ClienteRef is the denormalized client contact snapshot taken at creation
// time. Later edits to the client do not change historical quotations.
type ClienteRef struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Email    string `json:"email,omitempty"`
}

// Detalles is the full pricing breakdown retained for audit and display.
type Detalles struct {
	PrecioPiel     float64 `json:"precioPiel"`
	Alto           float64 `json:"alto"`
	Largo          float64 `json:"largo"`
	Porcentaje     float64 `json:"porcentaje"`
	PrecioUnitario float64 `json:"precioUnitario"`
	PrecioResiduo  float64 `json:"precioResiduo"`
	TotalResiduo   float64 `json:"totalResiduo"`
	ValorInsumos   float64 `json:"valorInsumos"`
}

// LineaInsumo is a supply usage line item with price and name snapshots.
type LineaInsumo struct {
	ID             string  `json:"id"`
	Nombre         string  `json:"nombre"`
	Cantidad       float64 `json:"cantidad"`
	PrecioUnitario float64 `json:"precioUnitario"`
}

// Quotation is a priced proposal for a client.
// JSON keys match the historical data file format.
type Quotation struct {
	ID               string        `json:"id"`
	Fecha            string        `json:"fecha"`
	ClienteID        string        `json:"clienteId"`
	Cliente          ClienteRef    `json:"cliente"`
	Descripcion      string        `json:"descripcion"`
	Estado           Estado        `json:"estado"`
	FechaVencimiento string        `json:"fechaVencimiento,omitempty"`
	FechaAprobacion  string        `json:"fechaAprobacion,omitempty"`
	FechaCompletado  string        `json:"fechaCompletado,omitempty"`
	Detalles         Detalles      `json:"detalles"`
	Insumos          []LineaInsumo `json:"insumos"`
	Total            float64       `json:"total"`
	Notas            string        `json:"notas,omitempty"`
	Descuento        float64       `json:"descuento,omitempty"`
	Impuestos        float64       `json:"impuestos,omitempty"`
	MetodoPago       string        `json:"metodoPago,omitempty"`
	CondicionesPago  string        `json:"condicionesPago,omitempty"`
	ValidezDias      int           `json:"validezDias,omitempty"`
}

// Patch carries a partial quotation update; nil fields stay untouched.
// Nested blocks (detalles, insumos, cliente) are replaced only when the
// patch carries the whole block.
type Patch struct {
	ClienteID        *string        `json:"clienteId,omitempty"`
	Cliente          *ClienteRef    `json:"cliente,omitempty"`
	Descripcion      *string        `json:"descripcion,omitempty"`
	Estado           *Estado        `json:"estado,omitempty"`
	FechaVencimiento *string        `json:"fechaVencimiento,omitempty"`
	Detalles         *Detalles      `json:"detalles,omitempty"`
	Insumos          *[]LineaInsumo `json:"insumos,omitempty"`
	Total            *float64       `json:"total,omitempty"`
	Notas            *string        `json:"notas,omitempty"`
	Descuento        *float64       `json:"descuento,omitempty"`
	Impuestos        *float64       `json:"impuestos,omitempty"`
	MetodoPago       *string        `json:"metodoPago,omitempty"`
	CondicionesPago  *string        `json:"condicionesPago,omitempty"`
	ValidezDias      *int           `json:"validezDias,omitempty"`
}

// Apply merges the patch over the quotation, field by field.
func (p Patch) Apply(q *Quotation) {
	if p.ClienteID != nil {
		q.ClienteID = *p.ClienteID
	}
	if p.Cliente != nil {
		q.Cliente = *p.Cliente
	}
	if p.Descripcion != nil {
		q.Descripcion = *p.Descripcion
	}
	if p.Estado != nil {
		q.Estado = *p.Estado
	}
	if p.FechaVencimiento != nil {
		q.FechaVencimiento = *p.FechaVencimiento
	}
	if p.Detalles != nil {
		q.Detalles = *p.Detalles
	}
	if p.Insumos != nil {
		q.Insumos = *p.Insumos
	}
	if p.Total != nil {
		q.Total = *p.Total
	}
	if p.Notas != nil {
		q.Notas = *p.Notas
	}
	if p.Descuento != nil {
		q.Descuento = *p.Descuento
	}
	if p.Impuestos != nil {
		q.Impuestos = *p.Impuestos
	}
	if p.MetodoPago != nil {
		q.MetodoPago = *p.MetodoPago
	}
	if p.CondicionesPago != nil {
		q.CondicionesPago = *p.CondicionesPago
	}
	if p.ValidezDias != nil {
		q.ValidezDias = *p.ValidezDias
	}
}

// SearchCriteria filters quotations. Zero values match everything.
type SearchCriteria struct {
	ClienteID   string
	Estado      Estado
	FechaDesde  string // inclusive, YYYY-MM-DD
	FechaHasta  string // inclusive, YYYY-MM-DD
	MontoMinimo *float64
	MontoMaximo *float64
	Descripcion string // substring, case-insensitive
}

// Matches reports whether the quotation satisfies the criteria.
func (sc SearchCriteria) Matches(q Quotation) bool {
	if sc.ClienteID != "" && q.ClienteID != sc.ClienteID {
		return false
	}
	if sc.Estado != "" && q.Estado != sc.Estado {
		return false
	}
	if sc.FechaDesde != "" && q.Fecha < sc.FechaDesde {
		return false
	}
	if sc.FechaHasta != "" && q.Fecha > sc.FechaHasta {
		return false
	}
	if sc.MontoMinimo != nil && q.Total < *sc.MontoMinimo {
		return false
	}
	if sc.MontoMaximo != nil && q.Total > *sc.MontoMaximo {
		return false
	}
	if sc.Descripcion != "" &&
		!strings.Contains(strings.ToLower(q.Descripcion), strings.ToLower(sc.Descripcion)) {
		return false
	}
	return true
}

// ExportFilter narrows the export document.
type ExportFilter struct {
	FechaInicio string
	FechaFin    string
	Estado      Estado
}
