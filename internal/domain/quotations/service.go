package quotations

import (
	"context"
	"time"

	"cotizador/internal/core/apperror"
	"cotizador/internal/storage/jsonstore"
	"cotizador/pkg/logger"
	"cotizador/pkg/numerator"
)

// DefaultValidezDias is the validity window applied when the caller does
// not specify one.
const DefaultValidezDias = 15

// DateLayout is the calendar-day format used for all quotation dates.
const DateLayout = "2006-01-02"

// Service manages the quotation collection.
type Service struct {
	store  jsonstore.Store[Quotation]
	strict bool
	now    func() time.Time
}

// Config wires the service dependencies.
type Config struct {
	Store jsonstore.Store[Quotation]
	// Strict rejects status changes out of a terminal status.
	Strict bool
}

func NewService(cfg Config) *Service {
	return &Service{
		store:  cfg.Store,
		strict: cfg.Strict,
		now:    time.Now,
	}
}

// CreateInput carries the fields accepted on creation. Estado is optional
// and defaults to pendiente; callers importing historical records may set
// it directly.
type CreateInput struct {
	ClienteID        string        `json:"clienteId"`
	Cliente          ClienteRef    `json:"cliente"`
	Descripcion      string        `json:"descripcion"`
	Estado           Estado        `json:"estado,omitempty"`
	Detalles         Detalles      `json:"detalles"`
	Insumos          []LineaInsumo `json:"insumos"`
	Total            float64       `json:"total"`
	Notas            string        `json:"notas,omitempty"`
	Descuento        float64       `json:"descuento,omitempty"`
	Impuestos        float64       `json:"impuestos,omitempty"`
	MetodoPago       string        `json:"metodoPago,omitempty"`
	CondicionesPago  string        `json:"condicionesPago,omitempty"`
	ValidezDias      int           `json:"validezDias,omitempty"`
	FechaVencimiento string        `json:"fechaVencimiento,omitempty"`
}

// List returns every quotation in storage order.
func (s *Service) List(ctx context.Context) ([]Quotation, error) {
	return s.store.LoadAll(ctx)
}

// GetByID returns one quotation.
func (s *Service) GetByID(ctx context.Context, id string) (Quotation, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Quotation{}, err
	}
	for _, q := range items {
		if q.ID == id {
			return q, nil
		}
	}
	return Quotation{}, apperror.NewNotFound("cotización", id)
}

// Search returns the quotations matching the criteria, preserving
// storage order.
func (s *Service) Search(ctx context.Context, sc SearchCriteria) ([]Quotation, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Quotation, 0, len(items))
	for _, q := range items {
		if sc.Matches(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// Create assigns the next COT-NNN number, stamps today's date, computes
// the expiry date from the validity window and appends the quotation.
func (s *Service) Create(ctx context.Context, in CreateInput) (Quotation, error) {
	if err := validateInput(in); err != nil {
		return Quotation{}, err
	}
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Quotation{}, err
	}
	s.backup(ctx)

	today := s.now().Format(DateLayout)
	validez := in.ValidezDias
	if validez <= 0 {
		validez = DefaultValidezDias
	}
	vencimiento := in.FechaVencimiento
	if vencimiento == "" {
		vencimiento = s.now().AddDate(0, 0, validez).Format(DateLayout)
	}
	estado := in.Estado
	if estado == "" {
		estado = EstadoPendiente
	}

	ids := make([]string, 0, len(items))
	for _, q := range items {
		ids = append(ids, q.ID)
	}
	q := Quotation{
		ID:               numerator.Next(numerator.DefaultConfig("COT"), ids),
		Fecha:            today,
		ClienteID:        in.ClienteID,
		Cliente:          in.Cliente,
		Descripcion:      in.Descripcion,
		Estado:           estado,
		FechaVencimiento: vencimiento,
		Detalles:         in.Detalles,
		Insumos:          in.Insumos,
		Total:            in.Total,
		Notas:            in.Notas,
		Descuento:        in.Descuento,
		Impuestos:        in.Impuestos,
		MetodoPago:       in.MetodoPago,
		CondicionesPago:  in.CondicionesPago,
		ValidezDias:      validez,
	}
	if q.Insumos == nil {
		q.Insumos = []LineaInsumo{}
	}

	items = append(items, q)
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Quotation{}, err
	}
	logger.Info(ctx, "quotation created", "id", q.ID, "cliente_id", q.ClienteID, "total", q.Total)
	return q, nil
}

// Update merges the patch over the stored quotation. Moving into aprobada
// stamps fechaAprobacion and moving into completada stamps fechaCompletado,
// each at most once; revisiting a status never overwrites the first stamp.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Quotation, error) {
	if p.Estado != nil && !p.Estado.Valid() {
		return Quotation{}, apperror.NewInvalidInput("unknown estado").
			WithDetail("estado", string(*p.Estado))
	}
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Quotation{}, err
	}
	idx := -1
	for i, q := range items {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Quotation{}, apperror.NewNotFound("cotización", id)
	}
	q := items[idx]

	if p.Estado != nil && *p.Estado != q.Estado {
		if s.strict && q.Estado.Terminal() {
			return Quotation{}, apperror.NewInvalidTransition(string(q.Estado), string(*p.Estado))
		}
	}

	s.backup(ctx)

	p.Apply(&q)

	today := s.now().Format(DateLayout)
	if q.Estado == EstadoAprobada && q.FechaAprobacion == "" {
		q.FechaAprobacion = today
	}
	if q.Estado == EstadoCompletada && q.FechaCompletado == "" {
		q.FechaCompletado = today
	}

	items[idx] = q
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Quotation{}, err
	}
	logger.Info(ctx, "quotation updated", "id", q.ID, "estado", q.Estado)
	return q, nil
}

// Delete removes the quotation and returns the removed record.
func (s *Service) Delete(ctx context.Context, id string) (Quotation, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Quotation{}, err
	}
	idx := -1
	for i, q := range items {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Quotation{}, apperror.NewNotFound("cotización", id)
	}
	removed := items[idx]

	s.backup(ctx)

	items = append(items[:idx], items[idx+1:]...)
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Quotation{}, err
	}
	logger.Info(ctx, "quotation deleted", "id", removed.ID)
	return removed, nil
}

// Export returns the quotations matching the filter in their plain
// record shape, ready to serialize as an indented document.
func (s *Service) Export(ctx context.Context, f ExportFilter) ([]Quotation, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Quotation, 0, len(items))
	for _, q := range items {
		if f.FechaInicio != "" && q.Fecha < f.FechaInicio {
			continue
		}
		if f.FechaFin != "" && q.Fecha > f.FechaFin {
			continue
		}
		if f.Estado != "" && q.Estado != f.Estado {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func validateInput(in CreateInput) error {
	if in.ClienteID == "" {
		return apperror.NewValidation("clienteId is required").
			WithDetail("field", "clienteId")
	}
	if in.Cliente.Nombre == "" {
		return apperror.NewValidation("cliente.nombre is required").
			WithDetail("field", "cliente.nombre")
	}
	if in.Descripcion == "" {
		return apperror.NewValidation("descripcion is required").
			WithDetail("field", "descripcion")
	}
	if in.Estado != "" && !in.Estado.Valid() {
		return apperror.NewInvalidInput("unknown estado").
			WithDetail("estado", string(in.Estado))
	}
	if in.Total < 0 {
		return apperror.NewInvalidInput("total must not be negative").
			WithDetail("field", "total")
	}
	for _, li := range in.Insumos {
		if li.Cantidad < 0 {
			return apperror.NewInvalidInput("insumo cantidad must not be negative").
				WithDetail("insumo_id", li.ID)
		}
	}
	return nil
}

// backup snapshots the collection before a mutation. Failures are logged
// and do not block the write.
func (s *Service) backup(ctx context.Context) {
	if err := s.store.CreateBackup(ctx); err != nil {
		logger.Warn(ctx, "quotation backup failed", "error", err)
	}
}
