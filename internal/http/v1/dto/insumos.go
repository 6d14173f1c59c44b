package dto

import (
	"cotizador/internal/domain/supplies"
)

// InsumoRequest is the payload for creating or replacing a supply.
type InsumoRequest struct {
	Nombre          string  `json:"nombre" binding:"required"`
	PrecioVolumen   float64 `json:"precio_volumen"`
	CantidadVolumen float64 `json:"cantidad_volumen"`
	PrecioUnidad    float64 `json:"precio_unidad"`
	Descripcion     string  `json:"descripcion"`
}

// ToInput maps the request to the domain input.
func (r InsumoRequest) ToInput() supplies.Input {
	return supplies.Input{
		Nombre:          r.Nombre,
		PrecioVolumen:   r.PrecioVolumen,
		CantidadVolumen: r.CantidadVolumen,
		PrecioUnidad:    r.PrecioUnidad,
		Descripcion:     r.Descripcion,
	}
}
