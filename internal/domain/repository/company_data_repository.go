package repository

import "github.com/jhoicas/SoporteChat-api/internal/domain/entity"

// CompanyDataRepository define el puerto de persistencia para el documento
// de conocimiento de una empresa (uno por Company, upsert en bloque).
type CompanyDataRepository interface {
	GetByCompanyID(companyID string) (*entity.CompanyData, error)
	// Upsert reemplaza los cuatro campos del documento; crea la fila si no existe.
	Upsert(data *entity.CompanyData) error
}
