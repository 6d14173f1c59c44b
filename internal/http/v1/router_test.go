package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cotizador/internal/domain/clients"
	"cotizador/internal/domain/quotations"
	"cotizador/internal/domain/reports"
	"cotizador/internal/domain/supplies"
	"cotizador/internal/storage/jsonstore"
	"cotizador/pkg/logger"
)

func newTestRouter(t *testing.T) (http.Handler, *jsonstore.MemStore[quotations.Quotation]) {
	t.Helper()

	cotStore := jsonstore.NewMemStore[quotations.Quotation]()
	return NewRouter(RouterConfig{
		Logger:       logger.Default(),
		Clientes:     clients.NewService(jsonstore.NewMemStore[clients.Client]()),
		Insumos:      supplies.NewService(jsonstore.NewMemStore[supplies.Supply]()),
		Cotizaciones: quotations.NewService(quotations.Config{Store: cotStore}),
		Reportes:     reports.NewService(cotStore),
	}), cotStore
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("X-Request-ID"), "-")
}

func TestCotizaciones_CreateAndGet(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"clienteId": "1",
		"cliente": {"nombre": "Ana Pérez", "telefono": "555-0101"},
		"descripcion": "Cinturón de cuero grabado",
		"detalles": {"precioPiel": 500, "alto": 40, "largo": 60, "porcentaje": 50,
			"precioUnitario": 5, "precioResiduo": 24, "totalResiduo": 36, "valorInsumos": 30},
		"insumos": [],
		"total": 210
	}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/cotizaciones", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created quotations.Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "COT-001", created.ID)
	assert.Equal(t, quotations.EstadoPendiente, created.Estado)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/cotizaciones/COT-001", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCotizaciones_NotFoundShape(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cotizaciones/COT-099", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCotizaciones_Calcular(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cotizaciones/calcular",
		`{"precioPiel": 500, "alto": 40, "largo": 60, "porcentaje": 50, "valorInsumos": 30}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 210.0, result["total"])
	assert.Equal(t, 5.0, result["precioUnitario"])
}

func TestClientes_ValidationErrorShape(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/clientes", `{"nombre": "Ana"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestInsumos_CreateDuplicateConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := `{"nombre": "Hilo encerado", "precio_volumen": 100, "cantidad_volumen": 10, "precio_unidad": 12}`
	rec := doRequest(t, router, http.MethodPost, "/api/v1/insumos", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/api/v1/insumos", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCotizaciones_VencimientoQueryDays(t *testing.T) {
	router, store := newTestRouter(t)

	soon := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	far := time.Now().AddDate(0, 0, 20).Format("2006-01-02")
	require.NoError(t, store.SaveAll(context.Background(), []quotations.Quotation{
		{ID: "COT-001", Estado: quotations.EstadoPendiente, FechaVencimiento: soon},
		{ID: "COT-002", Estado: quotations.EstadoPendiente, FechaVencimiento: far},
	}))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cotizaciones/vencimiento?dias=5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var near []quotations.Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &near))
	require.Len(t, near, 1)
	assert.Equal(t, "COT-001", near[0].ID)

	// A malformed dias falls back to the default 7-day window.
	rec = doRequest(t, router, http.MethodGet, "/api/v1/cotizaciones/vencimiento?dias=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &near))
	assert.Len(t, near, 1)
}
