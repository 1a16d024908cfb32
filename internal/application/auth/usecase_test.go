package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/SoporteChat-api/internal/application/auth"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/SoporteChat-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*entity.User{}} }

func (f *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
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
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*entity.Company{}}
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	for _, existing := range f.companies {
		if existing.Slug == c.Slug {
			return domain.ErrSlugAlreadyExists
		}
	}
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

func (f *fakeCompanyRepo) Update(c *entity.Company) error           { return nil }
func (f *fakeCompanyRepo) List(int, int) ([]*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Search(string, int, int) ([]*entity.Company, error) {
	return nil, nil
}

type fakeDataRepo struct {
	docs map[string]*entity.CompanyData
}

func (f *fakeDataRepo) GetByCompanyID(companyID string) (*entity.CompanyData, error) {
	d, ok := f.docs[companyID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDataRepo) Upsert(data *entity.CompanyData) error {
	cp := *data
	f.docs[data.CompanyID] = &cp
	return nil
}

// fakeRegistrationTx pasa los fakes directamente, pero si fn falla descarta
// todo lo escrito para imitar el rollback de la transacción real.
type fakeRegistrationTx struct {
	userRepo    *fakeUserRepo
	companyRepo *fakeCompanyRepo
	dataRepo    *fakeDataRepo
}

func (f *fakeRegistrationTx) RunRegistration(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	dataRepo repository.CompanyDataRepository,
) error) error {
	usersBefore := map[string]*entity.User{}
	for k, v := range f.userRepo.users {
		usersBefore[k] = v
	}
	companiesBefore := map[string]*entity.Company{}
	for k, v := range f.companyRepo.companies {
		companiesBefore[k] = v
	}
	docsBefore := map[string]*entity.CompanyData{}
	for k, v := range f.dataRepo.docs {
		docsBefore[k] = v
	}

	if err := fn(f.companyRepo, f.userRepo, f.dataRepo); err != nil {
		f.userRepo.users = usersBefore
		f.companyRepo.companies = companiesBefore
		f.dataRepo.docs = docsBefore
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type authFixture struct {
	uc          *auth.AuthUseCase
	userRepo    *fakeUserRepo
	companyRepo *fakeCompanyRepo
	dataRepo    *fakeDataRepo
}

const authTestSecret = "auth-test-secret"

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		userRepo:    newFakeUserRepo(),
		companyRepo: newFakeCompanyRepo(),
		dataRepo:    &fakeDataRepo{docs: map[string]*entity.CompanyData{}},
	}
	tx := &fakeRegistrationTx{userRepo: f.userRepo, companyRepo: f.companyRepo, dataRepo: f.dataRepo}
	f.uc = auth.NewAuthUseCase(f.userRepo, f.companyRepo, tx, auth.JWTConfig{
		Secret:     authTestSecret,
		ExpMinutes: 60,
		Issuer:     "soporte-chat-test",
	})
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterCustomer_CreaUsuarioSinEmpresa(t *testing.T) {
	f := newAuthFixture(t)

	out, err := f.uc.RegisterCustomer(context.Background(), dto.RegisterRequest{
		Mode: dto.RegisterModeCustomer, Email: "cliente@mail.com", Password: "superseguro1", Name: "Cliente",
	})
	require.NoError(t, err)

	user, _ := f.userRepo.GetByID(out.UserID)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.Nil(t, user.CompanyID, "un cliente no pertenece a ninguna empresa")
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "superseguro1", *user.PasswordHash, "el password nunca se guarda plano")
}

func TestRegisterCustomer_EmailDuplicado(t *testing.T) {
	f := newAuthFixture(t)
	in := dto.RegisterRequest{Mode: dto.RegisterModeCustomer, Email: "cliente@mail.com", Password: "superseguro1", Name: "Cliente"}
	_, err := f.uc.RegisterCustomer(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.RegisterCustomer(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de empresas — empresa + admin + documento vacío en una transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterCompany_CreaEmpresaAdminYDocumento(t *testing.T) {
	f := newAuthFixture(t)

	out, err := f.uc.RegisterCompany(context.Background(), dto.RegisterRequest{
		Mode: dto.RegisterModeCompany, Email: "admin@acme.com", Password: "superseguro1",
		CompanyName: "Café Móvil", AdminName: "Admin",
	})
	require.NoError(t, err)

	// El slug se deriva del nombre plegando tildes
	company, _ := f.companyRepo.GetBySlug("cafe-movil")
	require.NotNil(t, company, "el slug derivado de 'Café Móvil' debe ser 'cafe-movil'")

	admin, _ := f.userRepo.GetByID(out.UserID)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleCompanyAdmin, admin.Role)
	require.NotNil(t, admin.CompanyID)
	assert.Equal(t, company.ID, *admin.CompanyID)

	// El documento de conocimiento nace vacío, listo para el primer guardado
	doc, _ := f.dataRepo.GetByCompanyID(company.ID)
	require.NotNil(t, doc)
	assert.False(t, doc.HasFeatures())
	assert.False(t, doc.HasPricing())
}

func TestRegisterCompany_SlugExplicito(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.RegisterCompany(context.Background(), dto.RegisterRequest{
		Mode: dto.RegisterModeCompany, Email: "admin@acme.com", Password: "superseguro1",
		CompanyName: "Acme Corp", CompanySlug: "acme", AdminName: "Admin",
	})
	require.NoError(t, err)

	company, _ := f.companyRepo.GetBySlug("acme")
	assert.NotNil(t, company)
}

func TestRegisterCompany_SlugInvalido(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.RegisterCompany(context.Background(), dto.RegisterRequest{
		Mode: dto.RegisterModeCompany, Email: "admin@acme.com", Password: "superseguro1",
		CompanyName: "Acme", CompanySlug: "Acme Corp!", AdminName: "Admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterCompany_SlugTomado(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.companyRepo.Create(&entity.Company{ID: "co-0", Name: "Otra", Slug: "acme"}))

	_, err := f.uc.RegisterCompany(context.Background(), dto.RegisterRequest{
		Mode: dto.RegisterModeCompany, Email: "admin@acme.com", Password: "superseguro1",
		CompanyName: "Acme", CompanySlug: "acme", AdminName: "Admin",
	})
	assert.ErrorIs(t, err, domain.ErrSlugAlreadyExists)

	// Nada quedó a medias: sin admin huérfano
	user, _ := f.userRepo.GetByEmail("admin@acme.com")
	assert.Nil(t, user)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func (f *authFixture) seedLoginUser(t *testing.T, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "u-1", Email: "cliente@mail.com", PasswordHash: &hashStr,
		Name: "Cliente", Role: entity.RoleCustomer,
	}))
}

func TestLogin_TokenConClaims(t *testing.T) {
	f := newAuthFixture(t)
	f.seedLoginUser(t, "superseguro1")

	out, err := f.uc.Login(dto.LoginRequest{Email: "cliente@mail.com", Password: "superseguro1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, companyID, role, err := pkgjwt.Parse(authTestSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Empty(t, companyID, "cliente sin empresa viaja con company_id vacío")
	assert.Equal(t, entity.RoleCustomer, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	f := newAuthFixture(t)
	f.seedLoginUser(t, "superseguro1")

	_, err := f.uc.Login(dto.LoginRequest{Email: "cliente@mail.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.Login(dto.LoginRequest{Email: "nadie@mail.com", Password: "superseguro1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_StaffSinPasswordNoEntra(t *testing.T) {
	f := newAuthFixture(t)
	companyID := "co-1"
	require.NoError(t, f.userRepo.Create(&entity.User{
		ID: "u-2", CompanyID: &companyID, Email: "invitado@acme.com",
		Name: "Invitado", Role: entity.RoleCompanyMember, // PasswordHash nil: invitación sin aceptar
	}))

	_, err := f.uc.Login(dto.LoginRequest{Email: "invitado@acme.com", Password: "loquesea1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
