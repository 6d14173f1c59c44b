package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cotizador/internal/core/apperror"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_ReferenceExample(t *testing.T) {
	result, err := Calculate(Input{
		PrecioPiel:   500,
		Alto:         40,
		Largo:        60,
		Porcentaje:   50,
		ValorInsumos: 30,
	})
	require.NoError(t, err)

	nearlyEqual(t, "precioUnitario", result.PrecioUnitario, 5)
	nearlyEqual(t, "precioResiduo", result.PrecioResiduo, 24)
	nearlyEqual(t, "totalResiduo", result.TotalResiduo, 36)
	nearlyEqual(t, "baseTotal", result.BaseTotal, 180)
	nearlyEqual(t, "total", result.Total, 210)
}

func TestCalculate_ZeroInputs(t *testing.T) {
	result, err := Calculate(Input{})
	require.NoError(t, err)

	nearlyEqual(t, "precioUnitario", result.PrecioUnitario, 0)
	nearlyEqual(t, "total", result.Total, 0)
}

func TestCalculate_SuppliesOnly(t *testing.T) {
	result, err := Calculate(Input{ValorInsumos: 42.5})
	require.NoError(t, err)

	nearlyEqual(t, "total", result.Total, 42.5)
}

func TestCalculate_ZeroMarkupKeepsResidue(t *testing.T) {
	result, err := Calculate(Input{PrecioPiel: 100, Alto: 10, Largo: 10})
	require.NoError(t, err)

	nearlyEqual(t, "precioResiduo", result.PrecioResiduo, 1)
	nearlyEqual(t, "totalResiduo", result.TotalResiduo, 1)
	nearlyEqual(t, "total", result.Total, 1)
}

func TestCalculate_TotalFormulaProperty(t *testing.T) {
	cases := []Input{
		{PrecioPiel: 500, Alto: 40, Largo: 60, Porcentaje: 50, ValorInsumos: 30},
		{PrecioPiel: 123.45, Alto: 33.3, Largo: 71.9, Porcentaje: 10, ValorInsumos: 0},
		{PrecioPiel: 0, Alto: 0, Largo: 0, Porcentaje: 0, ValorInsumos: 0},
		{PrecioPiel: 999.99, Alto: 120, Largo: 80, Porcentaje: 25, ValorInsumos: 15.75},
	}
	for _, in := range cases {
		result, err := Calculate(in)
		require.NoError(t, err)

		want := (in.PrecioPiel/100)*((in.Alto*in.Largo)/100*(1+in.Porcentaje/100)) + in.ValorInsumos
		nearlyEqual(t, "total", result.Total, want)
	}
}

func TestCalculate_NegativeInputsRejected(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"precioPiel", Input{PrecioPiel: -1}},
		{"alto", Input{Alto: -0.5}},
		{"largo", Input{Largo: -10}},
		{"porcentaje", Input{Porcentaje: -5}},
		{"valorInsumos", Input{ValorInsumos: -3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Calculate(c.in)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
			assert.Equal(t, c.name, appErr.Details["field"])
		})
	}
}
