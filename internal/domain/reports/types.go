// Package reports aggregates quotation data into stats, sales reports
// and near-expiry listings.
package reports

import (
	"cotizador/internal/domain/quotations"
)

// Stats is the dashboard summary of the whole quotation collection.
//
// VentaTotal sums only aprobada and completada quotations, while
// VentaPromedio divides by the count of ALL quotations. The two metrics
// use different denominators on purpose; the sales report below has its
// own average over won quotations only.
type Stats struct {
	Total                int                        `json:"total"`
	PorEstado            map[quotations.Estado]int  `json:"porEstado"`
	VentaTotal           float64                    `json:"ventaTotal"`
	VentaPromedio        float64                    `json:"ventaPromedio"`
	CotizacionesVencidas int                        `json:"cotizacionesVencidas"`
	CotizacionesDelMes   int                        `json:"cotizacionesDelMes"`
}

// ClienteActivo is one row of the top-clients ranking.
type ClienteActivo struct {
	ClienteID         string  `json:"clienteId"`
	Nombre            string  `json:"nombre"`
	TotalCotizaciones int     `json:"totalCotizaciones"`
	MontoTotal        float64 `json:"montoTotal"`
}

// InsumoUsado is one row of the top-supplies ranking.
type InsumoUsado struct {
	InsumoID      string  `json:"insumoId"`
	Nombre        string  `json:"nombre"`
	CantidadUsada float64 `json:"cantidadUsada"`
	MontoTotal    float64 `json:"montoTotal"`
}

// VentaMensual is one month bucket of the sales series.
type VentaMensual struct {
	Mes          string  `json:"mes"` // YYYY-MM
	Ventas       float64 `json:"ventas"`
	Cotizaciones int     `json:"cotizaciones"`
}

// ReporteVentas is the sales report over an inclusive date range.
// VentaPromedio here divides by the won count (aprobadas bucket), not by
// the total count as Stats does.
type ReporteVentas struct {
	Periodo                string          `json:"periodo"`
	TotalCotizaciones      int             `json:"totalCotizaciones"`
	CotizacionesAprobadas  int             `json:"cotizacionesAprobadas"`
	CotizacionesRechazadas int             `json:"cotizacionesRechazadas"`
	CotizacionesPendientes int             `json:"cotizacionesPendientes"`
	VentaTotal             float64         `json:"ventaTotal"`
	VentaPromedio          float64         `json:"ventaPromedio"`
	ClientesMasActivos     []ClienteActivo `json:"clientesMasActivos"`
	InsumosMasUsados       []InsumoUsado   `json:"insumosMasUsados"`
	VentasPorMes           []VentaMensual  `json:"ventasPorMes"`
}
