package dto

import "time"

// Modos de registro.
const (
	RegisterModeCustomer = "customer"
	RegisterModeCompany  = "company"
)

// RegisterRequest entrada para registro. Mode decide qué campos aplican:
// customer → name, email, password; company → además company_name, company_slug,
// admin_name y opcionalmente website/description.
type RegisterRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=customer company"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	// Registro de cliente
	Name string `json:"name" validate:"omitempty,max=200"`

	// Registro de empresa
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	CompanySlug string `json:"company_slug" validate:"omitempty,max=100"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	AdminName   string `json:"admin_name" validate:"omitempty,max=200"`
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID *string   `json:"company_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
