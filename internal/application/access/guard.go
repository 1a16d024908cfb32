// Package access concentra las reglas de autorización por tenant en un solo
// predicado. Todas las rutas consultan estas funciones en lugar de comparar
// roles por su cuenta, para que la lógica no diverja entre endpoints.
package access

import "github.com/jhoicas/SoporteChat-api/internal/domain/entity"

// Principal es el caller autenticado, tal como viaja en los claims del JWT.
// CompanyID es vacío para clientes.
type Principal struct {
	UserID    string
	CompanyID string
	Role      string
}

// IsStaff informa si el principal pertenece al staff de una empresa.
func (p Principal) IsStaff() bool {
	return entity.IsStaff(p.Role) && p.CompanyID != ""
}

// CanReadChat: el cliente dueño del chat, o el staff de la empresa del chat.
func CanReadChat(p Principal, chat *entity.Chat) bool {
	if chat == nil {
		return false
	}
	if p.Role == entity.RoleCustomer {
		return chat.UserID == p.UserID
	}
	return p.IsStaff() && chat.CompanyID == p.CompanyID
}

// CanWriteChat: solo el cliente dueño puede agregar mensajes.
// El staff es lectura-solamente sobre los chats de su empresa.
func CanWriteChat(p Principal, chat *entity.Chat) bool {
	if chat == nil {
		return false
	}
	return p.Role == entity.RoleCustomer && chat.UserID == p.UserID
}

// CanCreateChat: solo clientes abren chats.
func CanCreateChat(p Principal) bool {
	return p.Role == entity.RoleCustomer
}

// CanViewCompanyData: cualquier staff de la empresa puede leer el documento.
func CanViewCompanyData(p Principal) bool {
	return p.IsStaff()
}

// CanManageCompany: solo el admin escribe el documento de conocimiento
// y gestiona invitaciones y staff.
func CanManageCompany(p Principal) bool {
	return p.Role == entity.RoleCompanyAdmin && p.CompanyID != ""
}
