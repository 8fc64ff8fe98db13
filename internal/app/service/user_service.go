package service

import (
	"context"
	"database/sql"

	"digilocker/internal/common"
	"digilocker/internal/domain/model"
	"digilocker/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	db       *sql.DB // For transactions
}

func NewUserService(userRepo repository.UserRepository, db *sql.DB) *UserService {
	return &UserService{userRepo: userRepo, db: db}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// DeleteUser removes the account. The schema cascades the deletion to the
// user's documents and role links.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}
