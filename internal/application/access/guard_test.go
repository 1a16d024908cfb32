package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/SoporteChat-api/internal/application/access"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
)

var (
	customer      = access.Principal{UserID: "user-1", Role: entity.RoleCustomer}
	otherCustomer = access.Principal{UserID: "user-2", Role: entity.RoleCustomer}
	admin         = access.Principal{UserID: "staff-1", CompanyID: "co-1", Role: entity.RoleCompanyAdmin}
	member        = access.Principal{UserID: "staff-2", CompanyID: "co-1", Role: entity.RoleCompanyMember}
	rival         = access.Principal{UserID: "staff-9", CompanyID: "co-9", Role: entity.RoleCompanyAdmin}

	ownChat = &entity.Chat{ID: "chat-1", UserID: "user-1", CompanyID: "co-1"}
)

// Matriz de aislamiento por tenant: cada fila es (principal, permiso esperado).
func TestCanReadChat_Matriz(t *testing.T) {
	cases := []struct {
		name string
		p    access.Principal
		want bool
	}{
		{"cliente dueño", customer, true},
		{"otro cliente", otherCustomer, false},
		{"admin de la empresa del chat", admin, true},
		{"miembro de la empresa del chat", member, true},
		{"admin de otra empresa", rival, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, access.CanReadChat(tc.p, ownChat))
		})
	}
}

func TestCanReadChat_ChatNil(t *testing.T) {
	assert.False(t, access.CanReadChat(customer, nil))
}

func TestCanWriteChat_SoloElDueno(t *testing.T) {
	assert.True(t, access.CanWriteChat(customer, ownChat))
	assert.False(t, access.CanWriteChat(otherCustomer, ownChat))
	// El staff lee los chats de su empresa pero nunca escribe en ellos
	assert.False(t, access.CanWriteChat(admin, ownChat))
	assert.False(t, access.CanWriteChat(member, ownChat))
}

func TestCanCreateChat_SoloClientes(t *testing.T) {
	assert.True(t, access.CanCreateChat(customer))
	assert.False(t, access.CanCreateChat(admin))
	assert.False(t, access.CanCreateChat(member))
}

func TestCanViewCompanyData_SoloStaff(t *testing.T) {
	assert.True(t, access.CanViewCompanyData(admin))
	assert.True(t, access.CanViewCompanyData(member))
	assert.False(t, access.CanViewCompanyData(customer))
}

func TestCanManageCompany_SoloAdmin(t *testing.T) {
	assert.True(t, access.CanManageCompany(admin))
	assert.False(t, access.CanManageCompany(member))
	assert.False(t, access.CanManageCompany(customer))

	// Un rol de staff sin empresa asignada (claims corruptos) no es staff
	huerfano := access.Principal{UserID: "x", Role: entity.RoleCompanyAdmin}
	assert.False(t, access.CanManageCompany(huerfano))
	assert.False(t, huerfano.IsStaff())
}
