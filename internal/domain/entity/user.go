package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer      = "customer"
	RoleCompanyAdmin  = "company_admin"
	RoleCompanyMember = "company_member"
)

// IsStaff informa si el rol pertenece al personal de una empresa.
func IsStaff(role string) bool {
	return role == RoleCompanyAdmin || role == RoleCompanyMember
}

// User representa un usuario del sistema.
// CompanyID es nil para clientes; el personal (staff) pertenece a una Company.
// PasswordHash es nil para staff invitado que aún no acepta la invitación.
type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash *string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // customer, company_admin, company_member
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
