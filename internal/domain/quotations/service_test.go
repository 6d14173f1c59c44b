package quotations

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cotizador/internal/core/apperror"
	"cotizador/internal/storage/jsonstore"
)

func newTestService(items []Quotation) (*Service, *jsonstore.MemStore[Quotation]) {
	store := jsonstore.NewMemStoreWith(items)
	svc := NewService(Config{Store: store})
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	return svc, store
}

func validInput() CreateInput {
	return CreateInput{
		ClienteID:   "1",
		Cliente:     ClienteRef{Nombre: "Ana Pérez", Telefono: "555-0101"},
		Descripcion: "Cinturón de cuero grabado",
		Detalles: Detalles{
			PrecioPiel: 500, Alto: 40, Largo: 60, Porcentaje: 50,
			PrecioUnitario: 5, PrecioResiduo: 24, TotalResiduo: 36, ValorInsumos: 30,
		},
		Insumos: []LineaInsumo{{ID: "3", Nombre: "Hilo encerado", Cantidad: 2, PrecioUnitario: 15}},
		Total:   210,
	}
}

func estadoPtr(e Estado) *Estado { return &e }

func TestCreate_AssignsSequentialNumbers(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "COT-001", first.ID)
	assert.Equal(t, "2026-03-15", first.Fecha)
	assert.Equal(t, EstadoPendiente, first.Estado)

	second, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "COT-002", second.ID)
}

func TestCreate_NumbersFromMaxNotCount(t *testing.T) {
	svc, _ := newTestService([]Quotation{
		{ID: "COT-001", Estado: EstadoPendiente},
		{ID: "COT-007", Estado: EstadoAprobada},
	})

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "COT-008", created.ID)
}

func TestCreate_DefaultValidityAndExpiry(t *testing.T) {
	svc, _ := newTestService(nil)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, DefaultValidezDias, created.ValidezDias)
	assert.Equal(t, "2026-03-30", created.FechaVencimiento)
}

func TestCreate_CustomValidity(t *testing.T) {
	svc, _ := newTestService(nil)

	in := validInput()
	in.ValidezDias = 30
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 30, created.ValidezDias)
	assert.Equal(t, "2026-04-14", created.FechaVencimiento)
}

func TestCreate_EstadoOverride(t *testing.T) {
	svc, _ := newTestService(nil)

	in := validInput()
	in.Estado = EstadoAprobada
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, EstadoAprobada, created.Estado)
	// Importing an already approved record does not stamp approval.
	assert.Empty(t, created.FechaAprobacion)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	cases := map[string]func(*CreateInput){
		"missing clienteId":   func(in *CreateInput) { in.ClienteID = "" },
		"missing nombre":      func(in *CreateInput) { in.Cliente.Nombre = "" },
		"missing descripcion": func(in *CreateInput) { in.Descripcion = "" },
		"unknown estado":      func(in *CreateInput) { in.Estado = "archivada" },
		"negative total":      func(in *CreateInput) { in.Total = -1 },
		"negative cantidad":   func(in *CreateInput) { in.Insumos[0].Cantidad = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(ctx, in)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Contains(t,
				[]string{apperror.CodeValidation, apperror.CodeInvalidInput}, appErr.Code)
		})
	}

	items, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, store.BackupCount)
}

func TestUpdate_StampsApprovalOnce(t *testing.T) {
	svc, _ := newTestService([]Quotation{{ID: "COT-001", Estado: EstadoPendiente}})
	ctx := context.Background()

	updated, err := svc.Update(ctx, "COT-001", Patch{Estado: estadoPtr(EstadoAprobada)})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", updated.FechaAprobacion)

	// Leave and come back; the first stamp survives.
	_, err = svc.Update(ctx, "COT-001", Patch{Estado: estadoPtr(EstadoEnProceso)})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC) }
	again, err := svc.Update(ctx, "COT-001", Patch{Estado: estadoPtr(EstadoAprobada)})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", again.FechaAprobacion)
}

func TestUpdate_StampsCompletionOnce(t *testing.T) {
	svc, _ := newTestService([]Quotation{{ID: "COT-001", Estado: EstadoEnProceso}})
	ctx := context.Background()

	updated, err := svc.Update(ctx, "COT-001", Patch{Estado: estadoPtr(EstadoCompletada)})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", updated.FechaCompletado)

	svc.now = func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	again, err := svc.Update(ctx, "COT-001", Patch{Estado: estadoPtr(EstadoCompletada)})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", again.FechaCompletado)
}

func TestUpdate_ShallowMergePreservesOtherFields(t *testing.T) {
	svc, _ := newTestService([]Quotation{{
		ID:          "COT-001",
		ClienteID:   "1",
		Descripcion: "Bolso de cuero",
		Estado:      EstadoPendiente,
		Total:       350,
		Notas:       "entrega urgente",
		Insumos:     []LineaInsumo{{ID: "2", Nombre: "Hebilla", Cantidad: 1, PrecioUnitario: 40}},
	}})

	newTotal := 380.0
	updated, err := svc.Update(context.Background(), "COT-001", Patch{Total: &newTotal})
	require.NoError(t, err)
	assert.Equal(t, 380.0, updated.Total)
	assert.Equal(t, "Bolso de cuero", updated.Descripcion)
	assert.Equal(t, "entrega urgente", updated.Notas)
	assert.Len(t, updated.Insumos, 1)
}

func TestUpdate_UnknownEstadoRejected(t *testing.T) {
	svc, _ := newTestService([]Quotation{{ID: "COT-001", Estado: EstadoPendiente}})

	_, err := svc.Update(context.Background(), "COT-001", Patch{Estado: estadoPtr("archivada")})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestUpdate_StrictModeLocksTerminalStates(t *testing.T) {
	store := jsonstore.NewMemStoreWith([]Quotation{{ID: "COT-001", Estado: EstadoRechazada}})
	svc := NewService(Config{Store: store, Strict: true})
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	_, err := svc.Update(ctx, "COT-001", Patch{Estado: estadoPtr(EstadoPendiente)})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)

	// Non-status fields on a terminal quotation still update.
	notas := "cliente avisado"
	updated, err := svc.Update(ctx, "COT-001", Patch{Notas: &notas})
	require.NoError(t, err)
	assert.Equal(t, "cliente avisado", updated.Notas)
}

func TestUpdate_PermissiveModeAllowsAnyTransition(t *testing.T) {
	svc, _ := newTestService([]Quotation{{ID: "COT-001", Estado: EstadoCancelada}})

	updated, err := svc.Update(context.Background(), "COT-001", Patch{Estado: estadoPtr(EstadoPendiente)})
	require.NoError(t, err)
	assert.Equal(t, EstadoPendiente, updated.Estado)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Update(context.Background(), "COT-099", Patch{})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_ReturnsRemovedRecord(t *testing.T) {
	svc, store := newTestService([]Quotation{
		{ID: "COT-001", Descripcion: "Cartera"},
		{ID: "COT-002", Descripcion: "Cinturón"},
	})
	ctx := context.Background()

	removed, err := svc.Delete(ctx, "COT-001")
	require.NoError(t, err)
	assert.Equal(t, "Cartera", removed.Descripcion)

	items, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "COT-002", items[0].ID)
}

func TestMutations_BackupBeforeEachWrite(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.ID, Patch{Estado: estadoPtr(EstadoAprobada)})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, store.BackupCount)
}

func TestMutations_BackupFailureDoesNotBlock(t *testing.T) {
	svc, store := newTestService(nil)
	store.BackupErr = assert.AnError

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "COT-001", created.ID)
}

func TestSearch_Criteria(t *testing.T) {
	svc, _ := newTestService([]Quotation{
		{ID: "COT-001", Fecha: "2026-01-10", ClienteID: "1", Estado: EstadoPendiente, Total: 100, Descripcion: "Cinturón liso"},
		{ID: "COT-002", Fecha: "2026-02-20", ClienteID: "2", Estado: EstadoAprobada, Total: 400, Descripcion: "Bolso grabado"},
		{ID: "COT-003", Fecha: "2026-03-05", ClienteID: "1", Estado: EstadoAprobada, Total: 250, Descripcion: "Cartera"},
	})
	ctx := context.Background()

	byClient, err := svc.Search(ctx, SearchCriteria{ClienteID: "1"})
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	min := 200.0
	max := 300.0
	byAmount, err := svc.Search(ctx, SearchCriteria{MontoMinimo: &min, MontoMaximo: &max})
	require.NoError(t, err)
	require.Len(t, byAmount, 1)
	assert.Equal(t, "COT-003", byAmount[0].ID)

	byRange, err := svc.Search(ctx, SearchCriteria{FechaDesde: "2026-02-01", FechaHasta: "2026-02-28"})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "COT-002", byRange[0].ID)

	byText, err := svc.Search(ctx, SearchCriteria{Descripcion: "graba", Estado: EstadoAprobada})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "COT-002", byText[0].ID)
}

func TestExport_ReturnsPlainFilteredRecords(t *testing.T) {
	svc, _ := newTestService([]Quotation{
		{ID: "COT-001", Fecha: "2026-01-10", Estado: EstadoPendiente},
		{ID: "COT-002", Fecha: "2026-02-20", Estado: EstadoAprobada},
		{ID: "COT-003", Fecha: "2026-03-05", Estado: EstadoAprobada},
	})
	ctx := context.Background()

	all, err := svc.Export(ctx, ExportFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := svc.Export(ctx, ExportFilter{Estado: EstadoAprobada, FechaInicio: "2026-02-01"})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "COT-002", filtered[0].ID)

	// The serialized document is the bare collection, same shape as the
	// data file, with no wrapper keys.
	data, err := json.MarshalIndent(filtered, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0])
	assert.NotContains(t, string(data), "fechaExportacion")
	assert.Contains(t, string(data), `"estado": "aprobada"`)
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService([]Quotation{{ID: "COT-001", Descripcion: "Cartera"}})
	ctx := context.Background()

	found, err := svc.GetByID(ctx, "COT-001")
	require.NoError(t, err)
	assert.Equal(t, "Cartera", found.Descripcion)

	_, err = svc.GetByID(ctx, "COT-099")
	assert.True(t, apperror.IsNotFound(err))
}
