package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/SoporteChat-api/internal/application/access"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

// CompanyUseCase directorio público de empresas y documento de conocimiento.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	dataRepo    repository.CompanyDataRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, dataRepo repository.CompanyDataRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, dataRepo: dataRepo}
}

// List lista empresas con paginación; con query busca por nombre.
func (uc *CompanyUseCase) List(query string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Company
		err  error
	)
	if query != "" {
		list, err = uc.companyRepo.Search(query, page.Limit, page.Offset)
	} else {
		list, err = uc.companyRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetBySlug obtiene el perfil público de una empresa.
func (uc *CompanyUseCase) GetBySlug(slug string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return toCompanyResponse(company), nil
}

// GetData devuelve el documento de conocimiento de la empresa del caller (staff).
func (uc *CompanyUseCase) GetData(p access.Principal) (*dto.CompanyDataResponse, error) {
	if !access.CanViewCompanyData(p) {
		return nil, domain.ErrForbidden
	}
	data, err := uc.dataRepo.GetByCompanyID(p.CompanyID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyDataResponse(data), nil
}

// UpsertData reemplaza el documento de conocimiento en bloque (solo admin).
// Idempotente: el mismo payload dos veces deja el mismo documento almacenado.
func (uc *CompanyUseCase) UpsertData(p access.Principal, in dto.CompanyDataRequest) (*dto.CompanyDataResponse, error) {
	if !access.CanManageCompany(p) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	data := &entity.CompanyData{
		ID:           uuid.New().String(),
		CompanyID:    p.CompanyID,
		Features:     in.Features,
		Pricing:      in.Pricing,
		Usage:        in.Usage,
		CommonIssues: in.CommonIssues,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.dataRepo.Upsert(data); err != nil {
		return nil, err
	}
	stored, err := uc.dataRepo.GetByCompanyID(p.CompanyID)
	if err != nil {
		return nil, err
	}
	return toCompanyDataResponse(stored), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Website:     c.Website,
		Logo:        c.Logo,
		CreatedAt:   c.CreatedAt,
	}
}

func toCompanyDataResponse(d *entity.CompanyData) *dto.CompanyDataResponse {
	return &dto.CompanyDataResponse{
		CompanyID:    d.CompanyID,
		Features:     d.Features,
		Pricing:      d.Pricing,
		Usage:        d.Usage,
		CommonIssues: d.CommonIssues,
		UpdatedAt:    d.UpdatedAt,
	}
}
