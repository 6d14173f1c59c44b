package dto

import (
	"cotizador/internal/domain/pricing"
	"cotizador/internal/domain/quotations"
)

// SearchCotizacionesQuery holds the quotation list filters.
type SearchCotizacionesQuery struct {
	ClienteID   string   `form:"clienteId"`
	Estado      string   `form:"estado"`
	FechaDesde  string   `form:"fechaDesde"`
	FechaHasta  string   `form:"fechaHasta"`
	MontoMinimo *float64 `form:"montoMinimo"`
	MontoMaximo *float64 `form:"montoMaximo"`
	Descripcion string   `form:"descripcion"`
}

// HasFilters reports whether any filter is set.
func (q SearchCotizacionesQuery) HasFilters() bool {
	return q.ClienteID != "" || q.Estado != "" ||
		q.FechaDesde != "" || q.FechaHasta != "" ||
		q.MontoMinimo != nil || q.MontoMaximo != nil ||
		q.Descripcion != ""
}

// ToCriteria maps the query to the domain criteria.
func (q SearchCotizacionesQuery) ToCriteria() quotations.SearchCriteria {
	return quotations.SearchCriteria{
		ClienteID:   q.ClienteID,
		Estado:      quotations.Estado(q.Estado),
		FechaDesde:  q.FechaDesde,
		FechaHasta:  q.FechaHasta,
		MontoMinimo: q.MontoMinimo,
		MontoMaximo: q.MontoMaximo,
		Descripcion: q.Descripcion,
	}
}

// ReporteQuery holds the sales report date range.
type ReporteQuery struct {
	Desde string `form:"desde" binding:"required"`
	Hasta string `form:"hasta" binding:"required"`
}

// ExportCotizacionesQuery holds the export filters.
type ExportCotizacionesQuery struct {
	FechaInicio string `form:"fechaInicio"`
	FechaFin    string `form:"fechaFin"`
	Estado      string `form:"estado"`
}

// ToFilter maps the query to the domain export filter.
func (q ExportCotizacionesQuery) ToFilter() quotations.ExportFilter {
	return quotations.ExportFilter{
		FechaInicio: q.FechaInicio,
		FechaFin:    q.FechaFin,
		Estado:      quotations.Estado(q.Estado),
	}
}

// CalcularRequest is the payload for the pricing calculator.
type CalcularRequest struct {
	PrecioPiel   float64 `json:"precioPiel"`
	Alto         float64 `json:"alto"`
	Largo        float64 `json:"largo"`
	Porcentaje   float64 `json:"porcentaje"`
	ValorInsumos float64 `json:"valorInsumos"`
}

// ToInput maps the request to the pricing input.
func (r CalcularRequest) ToInput() pricing.Input {
	return pricing.Input{
		PrecioPiel:   r.PrecioPiel,
		Alto:         r.Alto,
		Largo:        r.Largo,
		Porcentaje:   r.Porcentaje,
		ValorInsumos: r.ValorInsumos,
	}
}
