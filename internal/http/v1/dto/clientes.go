// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"cotizador/internal/domain/clients"
)

// CreateClienteRequest is the payload for registering a client.
type CreateClienteRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Telefono  string `json:"telefono" binding:"required"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
	Categoria string `json:"categoria"`
	Notas     string `json:"notas"`
}

// ToInput maps the request to the domain input.
func (r CreateClienteRequest) ToInput() clients.CreateInput {
	return clients.CreateInput{
		Nombre:    r.Nombre,
		Telefono:  r.Telefono,
		Email:     r.Email,
		Direccion: r.Direccion,
		Categoria: r.Categoria,
		Notas:     r.Notas,
	}
}

// UpdateClienteRequest is a partial client update. Absent fields keep
// their stored values.
type UpdateClienteRequest struct {
	Nombre    *string `json:"nombre"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	Categoria *string `json:"categoria"`
	Notas     *string `json:"notas"`
}

// ToPatch maps the request to the domain patch.
func (r UpdateClienteRequest) ToPatch() clients.Patch {
	return clients.Patch{
		Nombre:    r.Nombre,
		Telefono:  r.Telefono,
		Email:     r.Email,
		Direccion: r.Direccion,
		Categoria: r.Categoria,
		Notas:     r.Notas,
	}
}

// SearchClientesQuery holds the client list filters.
type SearchClientesQuery struct {
	Nombre     string `form:"nombre"`
	Telefono   string `form:"telefono"`
	Email      string `form:"email"`
	Categoria  string `form:"categoria"`
	FechaDesde string `form:"fechaDesde"`
	FechaHasta string `form:"fechaHasta"`
}

// HasFilters reports whether any filter is set.
func (q SearchClientesQuery) HasFilters() bool {
	return q != SearchClientesQuery{}
}

// ToCriteria maps the query to the domain criteria.
func (q SearchClientesQuery) ToCriteria() clients.SearchCriteria {
	return clients.SearchCriteria{
		Nombre:     q.Nombre,
		Telefono:   q.Telefono,
		Email:      q.Email,
		Categoria:  q.Categoria,
		FechaDesde: q.FechaDesde,
		FechaHasta: q.FechaHasta,
	}
}
