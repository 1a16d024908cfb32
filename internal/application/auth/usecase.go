package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
	"github.com/jhoicas/SoporteChat-api/pkg/jwt"
	"github.com/jhoicas/SoporteChat-api/pkg/slug"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegistrationTxRunner ejecuta el registro de una empresa (empresa + admin +
// documento de conocimiento vacío) como una sola transacción todo-o-nada.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		dataRepo repository.CompanyDataRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro (cliente/empresa) y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	txRunner    RegistrationTxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, txRunner RegistrationTxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// RegisterCustomer crea un usuario cliente (sin empresa).
// Devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterCustomer(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	hashStr := string(hash)
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    nil,
		Email:        in.Email,
		PasswordHash: &hashStr,
		Name:         in.Name,
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{Message: "cuenta creada", UserID: user.ID}, nil
}

// RegisterCompany crea empresa + usuario admin + documento de conocimiento vacío
// en UNA transacción: un fallo en cualquier paso revierte todo (sin filas huérfanas).
// Devuelve domain.ErrSlugAlreadyExists o domain.ErrEmailAlreadyExists en colisiones.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	companySlug := in.CompanySlug
	if companySlug == "" {
		companySlug = slug.Normalize(in.CompanyName)
	}
	if !slug.Valid(companySlug) {
		return nil, domain.ErrInvalidInput
	}
	if taken, err := uc.companyRepo.GetBySlug(companySlug); err != nil {
		return nil, err
	} else if taken != nil {
		return nil, domain.ErrSlugAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	hashStr := string(hash)
	companyID := uuid.New().String()
	userID := uuid.New().String()

	err = uc.txRunner.RunRegistration(ctx, func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		dataRepo repository.CompanyDataRepository,
	) error {
		company := &entity.Company{
			ID:          companyID,
			Name:        in.CompanyName,
			Slug:        companySlug,
			Description: in.Description,
			Website:     in.Website,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := companyRepo.Create(company); err != nil {
			return err
		}

		admin := &entity.User{
			ID:           userID,
			CompanyID:    &companyID,
			Email:        in.Email,
			PasswordHash: &hashStr,
			Name:         in.AdminName,
			Role:         entity.RoleCompanyAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			return err
		}

		// Documento de conocimiento inicial vacío, listo para el primer guardado
		data := &entity.CompanyData{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			Features:     json.RawMessage(`[]`),
			Pricing:      json.RawMessage(`{}`),
			Usage:        json.RawMessage(`{}`),
			CommonIssues: json.RawMessage(`[]`),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return dataRepo.Upsert(data)
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{Message: "cuenta de empresa creada", UserID: userID}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Staff invitado que aún no fija password (PasswordHash nil) no puede iniciar sesión.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.PasswordHash == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse convierte la entidad a su DTO de salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
