package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"digilocker/internal/common"
	"digilocker/internal/common/security"
	"digilocker/internal/domain/model"
	"digilocker/internal/domain/repository"
	"digilocker/internal/platform/config"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	db       *sql.DB // For transactions
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, db *sql.DB) *AuthService {
	return &AuthService{userRepo: userRepo, roleRepo: roleRepo, db: db}
}

type SignupRequest struct {
	Username      string   `json:"username" validate:"required,min=3,max=50"`
	Email         string   `json:"email" validate:"required,email,max=50"`
	MobileNumber  string   `json:"mobile_number" validate:"required,min=10,max=15"`
	FullName      string   `json:"full_name" validate:"required,max=100"`
	AadhaarNumber *string  `json:"aadhaar_number,omitempty" validate:"omitempty,len=12"`
	Password      string   `json:"password" validate:"required,min=6,max=40"`
	Roles         []string `json:"roles,omitempty" validate:"omitempty,dive,oneof=user moderator admin"`
}

type LoginRequest struct {
	LoginField string `json:"login_field" validate:"required"` // Can be username or email
	Password   string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password, config.AppConfig.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleNames := req.Roles
	if len(roleNames) == 0 {
		roleNames = []string{model.RoleUser} // Default role
	}

	roleIDs := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := s.roleRepo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve role %q: %w", name, err)
		}
		roleIDs = append(roleIDs, role.ID)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		MobileNumber:   req.MobileNumber,
		FullName:       req.FullName,
		AadhaarNumber:  req.AadhaarNumber,
		HashedPassword: hashedPassword,
		Roles:          roleNames,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		// Repo might return common.ErrConflict
		return nil, err
	}
	if err := s.userRepo.AssignRoles(ctx, tx, user.ID, roleIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	token, err := security.GenerateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	var user *model.User
	var err error

	// Try finding by email first, then by username
	user, err = s.userRepo.FindByEmail(ctx, req.LoginField)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			user, err = s.userRepo.FindByUsername(ctx, req.LoginField)
		}
	}

	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}
