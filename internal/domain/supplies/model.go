// Package supplies provides the supply (insumo) catalog and stock ledger.
// Supplies are raw-material inventory items with bulk and unit pricing.
package supplies

import (
	"strings"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/types"
)

// Supply represents a raw-material or component inventory item.
// JSON keys match the historical data file format.
type Supply struct {
	ID string `json:"id"`

	// Nombre is unique across the catalog, case-insensitive.
	Nombre string `json:"nombre"`

	// PrecioVolumen is the price of a full bulk batch.
	PrecioVolumen float64 `json:"precio_volumen"`

	// CantidadVolumen is the units per bulk batch; it doubles as the
	// on-hand quantity tracked while building a quotation.
	CantidadVolumen float64 `json:"cantidad_volumen"`

	// PrecioUnidad is the single-unit price.
	PrecioUnidad float64 `json:"precio_unidad"`

	Descripcion string `json:"descripcion"`
}

// Validate checks supply invariants.
func (s *Supply) Validate() error {
	if strings.TrimSpace(s.Nombre) == "" {
		return apperror.NewValidation("nombre is required").
			WithDetail("field", "nombre")
	}
	switch {
	case s.PrecioVolumen < 0:
		return apperror.NewInvalidInput("precio_volumen must not be negative").
			WithDetail("field", "precio_volumen")
	case s.CantidadVolumen < 0:
		return apperror.NewInvalidInput("cantidad_volumen must not be negative").
			WithDetail("field", "cantidad_volumen")
	case s.PrecioUnidad < 0:
		return apperror.NewInvalidInput("precio_unidad must not be negative").
			WithDetail("field", "precio_unidad")
	}
	return nil
}

// NormalizedName returns the name trimmed and lowercased, the form used for
// uniqueness checks.
func (s *Supply) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(s.Nombre))
}

// BulkSavingPercent returns how much cheaper the bulk batch is compared to
// buying the same quantity at unit price, as a percentage rounded to one
// decimal. Returns 0 when the comparison is undefined.
func BulkSavingPercent(s Supply) float64 {
	unitTotal := types.NewMoney(s.PrecioUnidad).Mul(types.NewMoney(s.CantidadVolumen))
	if unitTotal.IsZero() {
		return 0
	}
	saving := unitTotal.Sub(types.NewMoney(s.PrecioVolumen)).
		Div(unitTotal).
		Mul(types.MustMoney("100"))
	v, _ := saving.Round(1).Float64()
	return v
}
