package supplies

import (
	"context"
	"strings"

	"cotizador/internal/core/apperror"
	"cotizador/internal/storage/jsonstore"
	"cotizador/pkg/logger"
	"cotizador/pkg/numerator"
)

// Service provides business logic for the supply catalog.
type Service struct {
	store jsonstore.Store[Supply]
}

// NewService creates a new supply service.
func NewService(store jsonstore.Store[Supply]) *Service {
	return &Service{store: store}
}

// Input carries the writable supply fields. Updates replace every field,
// matching the catalog's full-record edit form.
type Input struct {
	Nombre          string
	PrecioVolumen   float64
	CantidadVolumen float64
	PrecioUnidad    float64
	Descripcion     string
}

func (in Input) toSupply(id string) Supply {
	return Supply{
		ID:              id,
		Nombre:          strings.TrimSpace(in.Nombre),
		PrecioVolumen:   in.PrecioVolumen,
		CantidadVolumen: in.CantidadVolumen,
		PrecioUnidad:    in.PrecioUnidad,
		Descripcion:     strings.TrimSpace(in.Descripcion),
	}
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]Supply, error) {
	return s.store.LoadAll(ctx)
}

// GetByID returns one supply.
func (s *Service) GetByID(ctx context.Context, id string) (Supply, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Supply{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return Supply{}, apperror.NewNotFound("insumo", id)
}

// Create adds a new supply with a sequential numeric id.
func (s *Service) Create(ctx context.Context, in Input) (Supply, error) {
	supply := in.toSupply("")
	if err := supply.Validate(); err != nil {
		return Supply{}, err
	}

	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Supply{}, err
	}

	if findByName(items, supply.NormalizedName(), "") != nil {
		return Supply{}, apperror.NewDuplicate("insumo", "nombre", supply.Nombre)
	}

	s.backup(ctx)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	supply.ID = numerator.NextNumeric(ids)

	items = append(items, supply)
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Supply{}, err
	}
	return supply, nil
}

// Update replaces a supply's fields. Renaming onto another supply's name
// fails with a duplicate error.
func (s *Service) Update(ctx context.Context, id string, in Input) (Supply, error) {
	supply := in.toSupply(id)
	if err := supply.Validate(); err != nil {
		return Supply{}, err
	}

	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Supply{}, err
	}

	idx := indexByID(items, id)
	if idx < 0 {
		return Supply{}, apperror.NewNotFound("insumo", id)
	}

	if findByName(items, supply.NormalizedName(), id) != nil {
		return Supply{}, apperror.NewDuplicate("insumo", "nombre", supply.Nombre)
	}

	s.backup(ctx)

	items[idx] = supply
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Supply{}, err
	}
	return supply, nil
}

// Delete removes a supply and returns the removed record.
func (s *Service) Delete(ctx context.Context, id string) (Supply, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Supply{}, err
	}

	idx := indexByID(items, id)
	if idx < 0 {
		return Supply{}, apperror.NewNotFound("insumo", id)
	}

	s.backup(ctx)

	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Supply{}, err
	}
	return removed, nil
}

// NewLedger loads the catalog and snapshots current stock for one
// quotation session. Callers composing a quotation reserve against the
// snapshot; the backing file is never touched until the quotation itself
// is saved.
func (s *Service) NewLedger(ctx context.Context) (*Ledger, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewLedger(items), nil
}

// backup snapshots the collection before a mutation. Failures are logged
// and never block the primary write.
func (s *Service) backup(ctx context.Context) {
	if err := s.store.CreateBackup(ctx); err != nil {
		logger.Warn(ctx, "supply backup failed", "error", err)
	}
}

func indexByID(items []Supply, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func findByName(items []Supply, normalized, excludeID string) *Supply {
	for i := range items {
		if items[i].ID != excludeID && items[i].NormalizedName() == normalized {
			return &items[i]
		}
	}
	return nil
}
