// Package pricing provides the quotation price calculator.
//
// The price of a leather piece derives from the skin price, the piece
// dimensions and a waste (residuo) markup, plus the cost of the selected
// supplies. The calculation is pure and keeps every intermediate figure so
// quotations can show the full breakdown.
package pricing

import (
	"cotizador/internal/core/apperror"
)

// Input holds the raw quotation figures entered by the user.
type Input struct {
	// PrecioPiel is the full skin price.
	PrecioPiel float64

	// Alto and Largo are the piece dimensions in centimeters.
	Alto  float64
	Largo float64

	// Porcentaje is the waste markup percentage applied to the residue.
	Porcentaje float64

	// ValorInsumos is the subtotal of the selected supplies.
	ValorInsumos float64
}

// Result holds every derived pricing field. All of them are kept on the
// quotation for audit and display, not just the final total.
type Result struct {
	PrecioUnitario float64 `json:"precioUnitario"`
	PrecioResiduo  float64 `json:"precioResiduo"`
	TotalResiduo   float64 `json:"totalResiduo"`
	ValorInsumos   float64 `json:"valorInsumos"`
	BaseTotal      float64 `json:"baseTotal"`
	Total          float64 `json:"total"`
}

// Calculate derives the pricing breakdown from raw inputs:
//
//	precioUnitario = precioPiel / 100
//	precioResiduo  = (alto * largo) / 100
//	totalResiduo   = precioResiduo * (1 + porcentaje/100)
//	baseTotal      = precioUnitario * totalResiduo
//	total          = baseTotal + valorInsumos
//
// The formula is undefined for negative inputs, so they are rejected.
func Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	precioUnitario := in.PrecioPiel / 100
	precioResiduo := (in.Alto * in.Largo) / 100
	totalResiduo := precioResiduo * (1 + in.Porcentaje/100)
	baseTotal := precioUnitario * totalResiduo
	total := baseTotal + in.ValorInsumos

	return Result{
		PrecioUnitario: precioUnitario,
		PrecioResiduo:  precioResiduo,
		TotalResiduo:   totalResiduo,
		ValorInsumos:   in.ValorInsumos,
		BaseTotal:      baseTotal,
		Total:          total,
	}, nil
}

func validate(in Input) error {
	switch {
	case in.PrecioPiel < 0:
		return apperror.NewInvalidInput("precioPiel must not be negative").
			WithDetail("field", "precioPiel")
	case in.Alto < 0:
		return apperror.NewInvalidInput("alto must not be negative").
			WithDetail("field", "alto")
	case in.Largo < 0:
		return apperror.NewInvalidInput("largo must not be negative").
			WithDetail("field", "largo")
	case in.Porcentaje < 0:
		return apperror.NewInvalidInput("porcentaje must not be negative").
			WithDetail("field", "porcentaje")
	case in.ValorInsumos < 0:
		return apperror.NewInvalidInput("valorInsumos must not be negative").
			WithDetail("field", "valorInsumos")
	}
	return nil
}
