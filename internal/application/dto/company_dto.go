package dto

import (
	"encoding/json"
	"time"
)

// CompanyResponse perfil público de una empresa (directorio de clientes).
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CompanyDataRequest entrada para el upsert del documento de conocimiento.
// Los cuatro campos se reemplazan en bloque; un campo ausente queda vacío.
type CompanyDataRequest struct {
	Features     json.RawMessage `json:"features"`
	Pricing      json.RawMessage `json:"pricing"`
	Usage        json.RawMessage `json:"usage"`
	CommonIssues json.RawMessage `json:"common_issues"`
}

// CompanyDataResponse salida del documento de conocimiento.
type CompanyDataResponse struct {
	CompanyID    string          `json:"company_id"`
	Features     json.RawMessage `json:"features"`
	Pricing      json.RawMessage `json:"pricing"`
	Usage        json.RawMessage `json:"usage"`
	CommonIssues json.RawMessage `json:"common_issues"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
