package entity

import (
	"encoding/json"
	"time"
)

// CompanyData es el documento de conocimiento de una empresa (uno por Company).
// Los cuatro campos son JSON libre curado por el admin; se reemplazan en bloque
// en cada guardado (sin merge parcial ni versionado).
type CompanyData struct {
	ID           string
	CompanyID    string
	Features     json.RawMessage // lista ordenada de {name, description}
	Pricing      json.RawMessage // objeto estructurado libre
	Usage        json.RawMessage // objeto estructurado libre
	CommonIssues json.RawMessage // lista ordenada de {issue, solution}
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// isEmptyJSON informa si un campo JSON no aporta contenido (nil, null, {}, [] o "").
func isEmptyJSON(raw json.RawMessage) bool {
	switch s := string(raw); s {
	case "", "null", "{}", "[]", `""`:
		return true
	default:
		return false
	}
}

// HasFeatures y compañía informan si el campo tiene contenido utilizable para el prompt.
func (d *CompanyData) HasFeatures() bool     { return !isEmptyJSON(d.Features) }
func (d *CompanyData) HasPricing() bool      { return !isEmptyJSON(d.Pricing) }
func (d *CompanyData) HasUsage() bool        { return !isEmptyJSON(d.Usage) }
func (d *CompanyData) HasCommonIssues() bool { return !isEmptyJSON(d.CommonIssues) }
