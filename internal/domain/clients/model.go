// Package clients provides the client catalog.
package clients

import (
	"regexp"
	"strings"

	"cotizador/internal/core/apperror"
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Client represents a customer of the workshop.
// JSON keys match the historical data file format.
type Client struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Telefono      string `json:"telefono"`
	Email         string `json:"email,omitempty"`
	Direccion     string `json:"direccion,omitempty"`
	FechaRegistro string `json:"fechaRegistro"`
	Categoria     string `json:"categoria,omitempty"`
	Notas         string `json:"notas,omitempty"`
}

// Validate checks client invariants.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Nombre) == "" {
		return apperror.NewValidation("nombre is required").
			WithDetail("field", "nombre")
	}
	if strings.TrimSpace(c.Telefono) == "" {
		return apperror.NewValidation("telefono is required").
			WithDetail("field", "telefono")
	}
	if c.Email != "" && !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	return nil
}

// Patch carries a partial client update; nil fields stay untouched.
type Patch struct {
	Nombre    *string
	Telefono  *string
	Email     *string
	Direccion *string
	Categoria *string
	Notas     *string
}

// Apply merges the patch over the client, field by field.
func (p Patch) Apply(c *Client) {
	if p.Nombre != nil && strings.TrimSpace(*p.Nombre) != "" {
		c.Nombre = strings.TrimSpace(*p.Nombre)
	}
	if p.Telefono != nil && strings.TrimSpace(*p.Telefono) != "" {
		c.Telefono = strings.TrimSpace(*p.Telefono)
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.Direccion != nil {
		c.Direccion = strings.TrimSpace(*p.Direccion)
	}
	if p.Categoria != nil {
		c.Categoria = *p.Categoria
	}
	if p.Notas != nil {
		c.Notas = *p.Notas
	}
}

// SearchCriteria filters clients. Zero values match everything.
type SearchCriteria struct {
	Nombre     string // substring, case-insensitive
	Telefono   string // substring
	Email      string // substring, case-insensitive
	Categoria  string // exact
	FechaDesde string // inclusive, YYYY-MM-DD
	FechaHasta string // inclusive, YYYY-MM-DD
}

// Matches reports whether the client satisfies the criteria.
func (sc SearchCriteria) Matches(c Client) bool {
	if sc.Nombre != "" && !strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(sc.Nombre)) {
		return false
	}
	if sc.Telefono != "" && !strings.Contains(c.Telefono, sc.Telefono) {
		return false
	}
	if sc.Email != "" {
		if c.Email == "" || !strings.Contains(strings.ToLower(c.Email), strings.ToLower(sc.Email)) {
			return false
		}
	}
	if sc.Categoria != "" && c.Categoria != sc.Categoria {
		return false
	}
	if sc.FechaDesde != "" && c.FechaRegistro < sc.FechaDesde {
		return false
	}
	if sc.FechaHasta != "" && c.FechaRegistro > sc.FechaHasta {
		return false
	}
	return true
}
