package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/SoporteChat-api/internal/application/auth"
	"github.com/jhoicas/SoporteChat-api/internal/application/team"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

// Ensure TxRunner implements auth.RegistrationTxRunner and team.AcceptTxRunner.
var _ auth.RegistrationTxRunner = (*TxRunner)(nil)
var _ team.AcceptTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration inicia una transacción con los repos del registro de empresa
// (empresa + admin + documento de conocimiento vacío) y hace Commit o Rollback.
// Todo-o-nada: un fallo en cualquier paso revierte los tres inserts.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	dataRepo repository.CompanyDataRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	companyRepo := NewCompanyRepository(tx)
	userRepo := NewUserRepository(tx)
	dataRepo := NewCompanyDataRepository(tx)

	if err := fn(companyRepo, userRepo, dataRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccept inicia una transacción para aceptar una invitación:
// crear-o-promover el usuario staff y eliminar la invitación como unidad atómica.
// No debe ser observable un estado parcial (usuario creado sin invitación borrada).
func (r *TxRunner) RunAccept(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	invitationRepo repository.InvitationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	invitationRepo := NewInvitationRepository(tx)

	if err := fn(userRepo, invitationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
