package repository

import "github.com/jhoicas/SoporteChat-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetBySlug(slug string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	// Search busca por nombre (match parcial, case-insensitive).
	Search(query string, limit, offset int) ([]*entity.Company, error)
}
