package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"digilocker/internal/common"
	"digilocker/internal/domain/model"

	"github.com/google/uuid"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	Create(ctx context.Context, role *model.Role) error
	EnsureDefaults(ctx context.Context) error
}

type pgRoleRepository struct {
	db *sql.DB
}

func NewPgRoleRepository(db *sql.DB) RoleRepository {
	return &pgRoleRepository{db: db}
}

func (r *pgRoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	query := `SELECT id, name FROM roles WHERE name = $1`
	role := &model.Role{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoleRepository.FindByName: %w", err)
	}
	return role, nil
}

func (r *pgRoleRepository) Create(ctx context.Context, role *model.Role) error {
	query := `INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, role.ID, role.Name)
	if err != nil {
		return fmt.Errorf("pgRoleRepository.Create: %w", err)
	}
	return nil
}

// EnsureDefaults seeds the fixed role enumeration if any member is absent.
func (r *pgRoleRepository) EnsureDefaults(ctx context.Context) error {
	for _, name := range model.AllRoles {
		_, err := r.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		if err := r.Create(ctx, &model.Role{ID: uuid.NewString(), Name: name}); err != nil {
			return err
		}
		log.Printf("Seeded role %q", name)
	}
	return nil
}
