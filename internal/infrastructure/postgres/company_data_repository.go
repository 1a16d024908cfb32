package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

var _ repository.CompanyDataRepository = (*CompanyDataRepo)(nil)

// CompanyDataRepo implementación del puerto CompanyDataRepository sobre PostgreSQL (usable con pool o tx).
// Los cuatro campos del documento se guardan como JSONB.
type CompanyDataRepo struct {
	q Querier
}

// NewCompanyDataRepository construye el adaptador de persistencia para documentos de conocimiento.
func NewCompanyDataRepository(q Querier) *CompanyDataRepo {
	return &CompanyDataRepo{q: q}
}

// GetByCompanyID obtiene el documento de conocimiento de una empresa.
func (r *CompanyDataRepo) GetByCompanyID(companyID string) (*entity.CompanyData, error) {
	query := `
		SELECT id, company_id, features, pricing, usage, common_issues, created_at, updated_at
		FROM company_data WHERE company_id = $1`
	var d entity.CompanyData
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&d.ID, &d.CompanyID, &d.Features, &d.Pricing, &d.Usage, &d.CommonIssues,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company data: %w", err)
	}
	return &d, nil
}

// Upsert reemplaza el documento completo (los cuatro campos en bloque).
// company_id tiene constraint único, lo que hace el upsert atómico en DB.
func (r *CompanyDataRepo) Upsert(data *entity.CompanyData) error {
	query := `
		INSERT INTO company_data (id, company_id, features, pricing, usage, common_issues, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id) DO UPDATE SET
			features = EXCLUDED.features,
			pricing = EXCLUDED.pricing,
			usage = EXCLUDED.usage,
			common_issues = EXCLUDED.common_issues,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		data.ID, data.CompanyID, data.Features, data.Pricing, data.Usage, data.CommonIssues,
		data.CreatedAt, data.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company data: %w", err)
	}
	return nil
}
