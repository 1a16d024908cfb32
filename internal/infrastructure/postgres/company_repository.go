package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. Devuelve domain.ErrSlugAlreadyExists si el slug ya existe.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, slug, description, website, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Slug, company.Description,
		company.Website, company.Logo, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugAlreadyExists
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `
		SELECT id, name, slug, description, website, logo, created_at, updated_at
		FROM companies WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySlug obtiene una empresa por slug.
func (r *CompanyRepo) GetBySlug(slug string) (*entity.Company, error) {
	query := `
		SELECT id, name, slug, description, website, logo, created_at, updated_at
		FROM companies WHERE slug = $1`
	return r.scanOne(query, slug)
}

func (r *CompanyRepo) scanOne(query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Website, &c.Logo,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza una empresa existente (el slug no cambia después de creada).
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, website = $4, logo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Description, company.Website,
		company.Logo, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List devuelve empresas con paginación (directorio público).
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT id, name, slug, description, website, logo, created_at, updated_at
		FROM companies ORDER BY name ASC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// Search busca empresas por nombre (match parcial, case-insensitive).
func (r *CompanyRepo) Search(q string, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT id, name, slug, description, website, logo, created_at, updated_at
		FROM companies WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	return r.scanMany(query, q, limit, offset)
}

func (r *CompanyRepo) scanMany(query string, args ...any) ([]*entity.Company, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Website, &c.Logo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
