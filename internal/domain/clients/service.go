package clients

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"cotizador/internal/core/apperror"
	"cotizador/internal/storage/jsonstore"
	"cotizador/pkg/logger"
	"cotizador/pkg/numerator"
)

const dateFormat = "2006-01-02"

// Service provides business logic for the client catalog.
type Service struct {
	store jsonstore.Store[Client]
	now   func() time.Time
}

// NewService creates a new client service.
func NewService(store jsonstore.Store[Client]) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateInput carries the fields accepted on registration.
type CreateInput struct {
	Nombre    string
	Telefono  string
	Email     string
	Direccion string
	Categoria string
	Notas     string
}

// List returns every client.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.store.LoadAll(ctx)
}

// GetByID returns one client.
func (s *Service) GetByID(ctx context.Context, id string) (Client, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Client{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return Client{}, apperror.NewNotFound("cliente", id)
}

// Search filters clients by the given criteria.
func (s *Service) Search(ctx context.Context, criteria SearchCriteria) ([]Client, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Client, 0, len(items))
	for _, c := range items {
		if criteria.Matches(c) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// Create registers a new client. The phone number must be unique.
func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	client := Client{
		Nombre:    strings.TrimSpace(in.Nombre),
		Telefono:  strings.TrimSpace(in.Telefono),
		Email:     strings.TrimSpace(in.Email),
		Direccion: strings.TrimSpace(in.Direccion),
		Categoria: in.Categoria,
		Notas:     in.Notas,
	}
	if err := client.Validate(); err != nil {
		return Client{}, err
	}

	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Client{}, err
	}

	if phoneTaken(items, client.Telefono, "") {
		return Client{}, apperror.NewDuplicate("cliente", "telefono", client.Telefono)
	}

	s.backup(ctx)

	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.ID
	}
	client.ID = numerator.NextNumeric(ids)
	client.FechaRegistro = s.now().Format(dateFormat)

	items = append(items, client)
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Client{}, err
	}
	return client, nil
}

// Update applies a partial update to a client.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Client, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Client{}, err
	}

	idx := -1
	for i, c := range items {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Client{}, apperror.NewNotFound("cliente", id)
	}

	updated := items[idx]
	patch.Apply(&updated)
	if err := updated.Validate(); err != nil {
		return Client{}, err
	}

	if updated.Telefono != items[idx].Telefono && phoneTaken(items, updated.Telefono, id) {
		return Client{}, apperror.NewDuplicate("cliente", "telefono", updated.Telefono)
	}

	s.backup(ctx)

	items[idx] = updated
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Client{}, err
	}
	return updated, nil
}

// Delete removes a client and returns the removed record. Quotations
// referencing the client keep their own contact snapshot, so no cascade
// is performed.
func (s *Service) Delete(ctx context.Context, id string) (Client, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return Client{}, err
	}

	idx := -1
	for i, c := range items {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Client{}, apperror.NewNotFound("cliente", id)
	}

	s.backup(ctx)

	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := s.store.SaveAll(ctx, items); err != nil {
		return Client{}, err
	}
	return removed, nil
}

// Stats summarizes the client catalog.
type Stats struct {
	Total           int            `json:"total"`
	NuevosUltimoMes int            `json:"nuevosUltimoMes"`
	PorCategoria    map[string]int `json:"porCategoria"`
}

// GetStats aggregates catalog counts. An unreadable backing file degrades
// to zero-value stats.
func (s *Service) GetStats(ctx context.Context) Stats {
	stats := Stats{PorCategoria: map[string]int{}}

	items, err := s.store.LoadAll(ctx)
	if err != nil {
		logger.Warn(ctx, "client stats degraded to empty", "error", err)
		return stats
	}

	oneMonthAgo := s.now().AddDate(0, -1, 0).Format(dateFormat)
	for _, c := range items {
		stats.Total++
		if c.FechaRegistro >= oneMonthAgo {
			stats.NuevosUltimoMes++
		}
		categoria := c.Categoria
		if categoria == "" {
			categoria = "Sin categoría"
		}
		stats.PorCategoria[categoria]++
	}
	return stats
}

// ExportJSON serializes the whole catalog as an indented document.
func (s *Service) ExportJSON(ctx context.Context) (string, error) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	return string(data), nil
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Imported int `json:"imported"`
	Errors   int `json:"errors"`
}

// ImportJSON bulk-registers clients from an exported document. Rows
// missing required fields or colliding on phone are counted as errors and
// skipped; valid rows are appended in one write.
func (s *Service) ImportJSON(ctx context.Context, data string) (ImportResult, error) {
	var incoming []CreateInput
	if err := json.Unmarshal([]byte(data), &incoming); err != nil {
		return ImportResult{}, apperror.NewValidation("invalid import document").WithCause(err)
	}

	items, err := s.store.LoadAll(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	s.backup(ctx)

	var result ImportResult
	today := s.now().Format(dateFormat)
	for _, in := range incoming {
		client := Client{
			Nombre:        strings.TrimSpace(in.Nombre),
			Telefono:      strings.TrimSpace(in.Telefono),
			Email:         strings.TrimSpace(in.Email),
			Direccion:     strings.TrimSpace(in.Direccion),
			Categoria:     in.Categoria,
			Notas:         in.Notas,
			FechaRegistro: today,
		}
		if client.Validate() != nil || phoneTaken(items, client.Telefono, "") {
			result.Errors++
			continue
		}

		ids := make([]string, len(items))
		for i, c := range items {
			ids[i] = c.ID
		}
		client.ID = numerator.NextNumeric(ids)
		items = append(items, client)
		result.Imported++
	}

	if err := s.store.SaveAll(ctx, items); err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// backup snapshots the collection before a mutation. Failures are logged
// and never block the primary write.
func (s *Service) backup(ctx context.Context) {
	if err := s.store.CreateBackup(ctx); err != nil {
		logger.Warn(ctx, "client backup failed", "error", err)
	}
}

func phoneTaken(items []Client, phone, excludeID string) bool {
	for _, c := range items {
		if c.ID != excludeID && c.Telefono == phone {
			return true
		}
	}
	return false
}
