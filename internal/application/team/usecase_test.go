package team_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/SoporteChat-api/internal/application/access"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/application/team"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvitationRepo struct {
	invitations map[string]*entity.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: map[string]*entity.Invitation{}}
}

func (f *fakeInvitationRepo) Create(i *entity.Invitation) error {
	cp := *i
	f.invitations[i.ID] = &cp
	return nil
}

func (f *fakeInvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	for _, i := range f.invitations {
		if i.Token == token {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitationRepo) GetByID(id string) (*entity.Invitation, error) {
	i, ok := f.invitations[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeInvitationRepo) GetByEmailAndCompany(email, companyID string) (*entity.Invitation, error) {
	for _, i := range f.invitations {
		if i.Email == email && i.CompanyID == companyID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitationRepo) ListByCompany(companyID string) ([]*entity.Invitation, error) {
	var out []*entity.Invitation
	for _, i := range f.invitations {
		if i.CompanyID == companyID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) Delete(id string) error {
	delete(f.invitations, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*entity.User{}} }

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.CompanyID != nil && *u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	f.companies[c.ID] = &cp
	return nil
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanyRepo) GetBySlug(slug string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) Update(c *entity.Company) error              { return f.Create(c) }
func (f *fakeCompanyRepo) List(int, int) ([]*entity.Company, error)    { return nil, nil }
func (f *fakeCompanyRepo) Search(string, int, int) ([]*entity.Company, error) {
	return nil, nil
}

// fakeAcceptTx pasa los fakes directamente: los tests no necesitan rollback real.
type fakeAcceptTx struct {
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
}

func (f *fakeAcceptTx) RunAccept(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	invitationRepo repository.InvitationRepository,
) error) error {
	return fn(f.userRepo, f.invitationRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type teamFixture struct {
	uc             *team.TeamUseCase
	invitationRepo *fakeInvitationRepo
	userRepo       *fakeUserRepo
}

var teamAdmin = access.Principal{UserID: "admin-1", CompanyID: "co-1", Role: entity.RoleCompanyAdmin}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()
	f := &teamFixture{
		invitationRepo: newFakeInvitationRepo(),
		userRepo:       newFakeUserRepo(),
	}
	companyRepo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"co-1": {ID: "co-1", Name: "Acme", Slug: "acme"},
	}}
	tx := &fakeAcceptTx{userRepo: f.userRepo, invitationRepo: f.invitationRepo}
	f.uc = team.NewTeamUseCase(f.invitationRepo, f.userRepo, companyRepo, tx)
	return f
}

// seedInvitation crea una invitación con vigencia relativa a now.
func (f *teamFixture) seedInvitation(t *testing.T, token string, ttl time.Duration) *entity.Invitation {
	t.Helper()
	inv := &entity.Invitation{
		ID:        "inv-" + token,
		CompanyID: "co-1",
		Email:     "nuevo@mail.com",
		Role:      entity.RoleCompanyMember,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.invitationRepo.Create(inv))
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// Invite
// ──────────────────────────────────────────────────────────────────────────────

func TestInvite_EmiteTokenConVigencia(t *testing.T) {
	f := newTeamFixture(t)

	out, err := f.uc.Invite(teamAdmin, dto.CreateInvitationRequest{Email: "nuevo@mail.com", Role: entity.RoleCompanyMember})
	require.NoError(t, err)

	assert.Len(t, out.Token, 64, "token = 32 bytes aleatorios en hex")
	assert.WithinDuration(t, time.Now().Add(entity.InvitationTTL), out.ExpiresAt, time.Minute,
		"la invitación vence a los 7 días")
}

func TestInvite_SoloElAdmin(t *testing.T) {
	f := newTeamFixture(t)
	miembro := access.Principal{UserID: "staff-2", CompanyID: "co-1", Role: entity.RoleCompanyMember}

	_, err := f.uc.Invite(miembro, dto.CreateInvitationRequest{Email: "nuevo@mail.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvite_MiembroExistenteEsDuplicado(t *testing.T) {
	f := newTeamFixture(t)
	companyID := "co-1"
	hash := "hash"
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "u-1", CompanyID: &companyID, Email: "nuevo@mail.com",
		PasswordHash: &hash, Role: entity.RoleCompanyMember,
	}))

	_, err := f.uc.Invite(teamAdmin, dto.CreateInvitationRequest{Email: "nuevo@mail.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInvite_PendienteEsDuplicado(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", entity.InvitationTTL)

	_, err := f.uc.Invite(teamAdmin, dto.CreateInvitationRequest{Email: "nuevo@mail.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestVerify_TokenVigente(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", entity.InvitationTTL)

	out, err := f.uc.Verify("tok-1")
	require.NoError(t, err)
	assert.Equal(t, "nuevo@mail.com", out.Email)
	assert.Equal(t, entity.RoleCompanyMember, out.Role)
	assert.Equal(t, "Acme", out.CompanyName)
}

func TestVerify_TokenExpirado(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", -time.Hour)

	_, err := f.uc.Verify("tok-1")
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)
}

func TestVerify_TokenDesconocido(t *testing.T) {
	f := newTeamFixture(t)
	_, err := f.uc.Verify("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Accept — el token es de un solo uso
// ──────────────────────────────────────────────────────────────────────────────

func TestAccept_CreaUsuarioYConsumeToken(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", entity.InvitationTTL)

	err := f.uc.Accept(context.Background(), dto.AcceptInvitationRequest{
		Token: "tok-1", Name: "Nuevo Miembro", Password: "superseguro1",
	})
	require.NoError(t, err)

	user, err := f.userRepo.GetByEmailAndCompany("nuevo@mail.com", "co-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Nuevo Miembro", user.Name)
	assert.Equal(t, entity.RoleCompanyMember, user.Role)
	require.NotNil(t, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("superseguro1")))

	// La fila de la invitación ya no existe: el token quedó consumido
	inv, _ := f.invitationRepo.GetByToken("tok-1")
	assert.Nil(t, inv)
}

func TestAccept_SegundoIntentoFalla(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", entity.InvitationTTL)

	in := dto.AcceptInvitationRequest{Token: "tok-1", Name: "Nuevo", Password: "superseguro1"}
	require.NoError(t, f.uc.Accept(context.Background(), in))

	err := f.uc.Accept(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un token ya consumido no existe más")
}

func TestAccept_TokenExpiradoSiempreFalla(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", -time.Minute)

	err := f.uc.Accept(context.Background(), dto.AcceptInvitationRequest{
		Token: "tok-1", Name: "Nuevo", Password: "superseguro1",
	})
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)

	user, _ := f.userRepo.GetByEmailAndCompany("nuevo@mail.com", "co-1")
	assert.Nil(t, user, "una invitación expirada no crea usuario")
}

func TestAccept_PromueveRegistroSinPassword(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", entity.InvitationTTL)
	companyID := "co-1"
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "u-1", CompanyID: &companyID, Email: "nuevo@mail.com",
		Name: "Preregistrado", Role: entity.RoleCompanyMember,
	}))

	err := f.uc.Accept(context.Background(), dto.AcceptInvitationRequest{
		Token: "tok-1", Name: "Nombre Final", Password: "superseguro1",
	})
	require.NoError(t, err)

	user, _ := f.userRepo.GetByID("u-1")
	require.NotNil(t, user)
	assert.Equal(t, "Nombre Final", user.Name)
	assert.NotNil(t, user.PasswordHash, "al aceptar se fija el password")
}

func TestAccept_MiembroActivoEsConflicto(t *testing.T) {
	f := newTeamFixture(t)
	f.seedInvitation(t, "tok-1", entity.InvitationTTL)
	companyID := "co-1"
	hash := "hash-existente"
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "u-1", CompanyID: &companyID, Email: "nuevo@mail.com",
		PasswordHash: &hash, Role: entity.RoleCompanyMember,
	}))

	err := f.uc.Accept(context.Background(), dto.AcceptInvitationRequest{
		Token: "tok-1", Name: "Nuevo", Password: "superseguro1",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revocación
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteInvitation_DeOtraEmpresaRespondeNotFound(t *testing.T) {
	f := newTeamFixture(t)
	inv := f.seedInvitation(t, "tok-1", entity.InvitationTTL)

	rival := access.Principal{UserID: "admin-9", CompanyID: "co-9", Role: entity.RoleCompanyAdmin}
	err := f.uc.DeleteInvitation(rival, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La invitación sigue viva
	still, _ := f.invitationRepo.GetByID(inv.ID)
	assert.NotNil(t, still)
}

func TestDeleteInvitation_AdminRevoca(t *testing.T) {
	f := newTeamFixture(t)
	inv := f.seedInvitation(t, "tok-1", entity.InvitationTTL)

	require.NoError(t, f.uc.DeleteInvitation(teamAdmin, inv.ID))

	gone, _ := f.invitationRepo.GetByID(inv.ID)
	assert.Nil(t, gone)
}
