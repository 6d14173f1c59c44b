package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cotizador/internal/domain/quotations"
	"cotizador/internal/storage/jsonstore"
	"cotizador/pkg/logger"
)

// DefaultExpiryWindowDays is the near-expiry lookahead applied when the
// caller does not pass one.
const DefaultExpiryWindowDays = 7

// wonEstado reports whether the status counts toward revenue.
func wonEstado(e quotations.Estado) bool {
	return e == quotations.EstadoAprobada || e == quotations.EstadoCompletada
}

// Service computes aggregates over the quotation collection. It reads
// the same store the lifecycle manager writes and never mutates it.
type Service struct {
	store jsonstore.Store[quotations.Quotation]
	now   func() time.Time
}

func NewService(store jsonstore.Store[quotations.Quotation]) *Service {
	return &Service{store: store, now: time.Now}
}

// GetStats summarizes the whole collection. A failing read degrades to
// zero-value stats instead of returning an error.
func (s *Service) GetStats(ctx context.Context) Stats {
	stats := Stats{PorEstado: make(map[quotations.Estado]int)}
	for _, e := range quotations.Estados {
		stats.PorEstado[e] = 0
	}

	items, err := s.store.LoadAll(ctx)
	if err != nil {
		logger.Warn(ctx, "stats degraded to empty", "error", err)
		return stats
	}

	today := s.now().Format(quotations.DateLayout)
	inicioMes := today[:7] + "-01"

	for _, q := range items {
		stats.PorEstado[q.Estado]++
		if wonEstado(q.Estado) {
			stats.VentaTotal += q.Total
		}
		if q.Estado == quotations.EstadoPendiente &&
			q.FechaVencimiento != "" && q.FechaVencimiento < today {
			stats.CotizacionesVencidas++
		}
		if q.Fecha >= inicioMes {
			stats.CotizacionesDelMes++
		}
	}
	stats.Total = len(items)
	if stats.Total > 0 {
		stats.VentaPromedio = stats.VentaTotal / float64(stats.Total)
	}
	return stats
}

// GenerateSalesReport aggregates the quotations dated within
// [desde, hasta] inclusive. Rankings keep first-seen order on ties.
func (s *Service) GenerateSalesReport(ctx context.Context, desde, hasta string) (ReporteVentas, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return ReporteVentas{}, err
	}

	filtered := make([]quotations.Quotation, 0, len(items))
	for _, q := range items {
		if q.Fecha >= desde && q.Fecha <= hasta {
			filtered = append(filtered, q)
		}
	}

	rep := ReporteVentas{
		Periodo:            fmt.Sprintf("%s - %s", desde, hasta),
		TotalCotizaciones:  len(filtered),
		ClientesMasActivos: []ClienteActivo{},
		InsumosMasUsados:   []InsumoUsado{},
		VentasPorMes:       []VentaMensual{},
	}

	for _, q := range filtered {
		switch {
		case wonEstado(q.Estado):
			rep.CotizacionesAprobadas++
			rep.VentaTotal += q.Total
		case q.Estado == quotations.EstadoRechazada:
			rep.CotizacionesRechazadas++
		case q.Estado == quotations.EstadoPendiente:
			rep.CotizacionesPendientes++
		}
	}
	if rep.CotizacionesAprobadas > 0 {
		rep.VentaPromedio = rep.VentaTotal / float64(rep.CotizacionesAprobadas)
	}

	rep.ClientesMasActivos = topClientes(filtered)
	rep.InsumosMasUsados = topInsumos(filtered)
	rep.VentasPorMes = ventasPorMes(filtered)
	return rep, nil
}

// GetNearExpiry returns the pendiente quotations whose expiry date falls
// within [today, today+days]. Already expired quotations are excluded.
func (s *Service) GetNearExpiry(ctx context.Context, days int) ([]quotations.Quotation, error) {
	if days <= 0 {
		days = DefaultExpiryWindowDays
	}
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(quotations.DateLayout)
	limit := s.now().AddDate(0, 0, days).Format(quotations.DateLayout)

	out := make([]quotations.Quotation, 0)
	for _, q := range items {
		if q.Estado != quotations.EstadoPendiente || q.FechaVencimiento == "" {
			continue
		}
		if q.FechaVencimiento >= today && q.FechaVencimiento <= limit {
			out = append(out, q)
		}
	}
	return out, nil
}

// topClientes ranks clients by won revenue, keeping first-seen order on
// equal amounts, and truncates to ten rows.
func topClientes(items []quotations.Quotation) []ClienteActivo {
	index := make(map[string]int)
	rows := make([]ClienteActivo, 0)
	for _, q := range items {
		i, ok := index[q.ClienteID]
		if !ok {
			i = len(rows)
			index[q.ClienteID] = i
			rows = append(rows, ClienteActivo{ClienteID: q.ClienteID, Nombre: q.Cliente.Nombre})
		}
		rows[i].TotalCotizaciones++
		if wonEstado(q.Estado) {
			rows[i].MontoTotal += q.Total
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].MontoTotal > rows[b].MontoTotal
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}
	return rows
}

// topInsumos ranks supplies by usage value across all line items.
func topInsumos(items []quotations.Quotation) []InsumoUsado {
	index := make(map[string]int)
	rows := make([]InsumoUsado, 0)
	for _, q := range items {
		for _, li := range q.Insumos {
			i, ok := index[li.ID]
			if !ok {
				i = len(rows)
				index[li.ID] = i
				rows = append(rows, InsumoUsado{InsumoID: li.ID, Nombre: li.Nombre})
			}
			rows[i].CantidadUsada += li.Cantidad
			rows[i].MontoTotal += li.Cantidad * li.PrecioUnitario
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].MontoTotal > rows[b].MontoTotal
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}
	return rows
}

// ventasPorMes buckets won revenue and quotation counts by YYYY-MM,
// sorted ascending by month key.
func ventasPorMes(items []quotations.Quotation) []VentaMensual {
	index := make(map[string]int)
	rows := make([]VentaMensual, 0)
	for _, q := range items {
		if len(q.Fecha) < 7 {
			continue
		}
		mes := q.Fecha[:7]
		i, ok := index[mes]
		if !ok {
			i = len(rows)
			index[mes] = i
			rows = append(rows, VentaMensual{Mes: mes})
		}
		rows[i].Cotizaciones++
		if wonEstado(q.Estado) {
			rows[i].Ventas += q.Total
		}
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].Mes < rows[b].Mes })
	return rows
}
