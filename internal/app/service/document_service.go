package service

import (
	"context"
	"database/sql"
	"time"

	"digilocker/internal/common"
	"digilocker/internal/domain/authz"
	"digilocker/internal/domain/model"
	"digilocker/internal/domain/repository"

	"github.com/google/uuid"
)

type DocumentService struct {
	documentRepo repository.DocumentRepository
	userRepo     repository.UserRepository
	db           *sql.DB // For transactions
}

func NewDocumentService(
	documentRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	db *sql.DB,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		userRepo:     userRepo,
		db:           db,
	}
}

type DocumentRequest struct {
	Name           string     `json:"name" validate:"required,max=100"`
	Description    string     `json:"description" validate:"max=255"`
	FileSize       int64      `json:"file_size" validate:"min=0"`
	FileType       string     `json:"file_type" validate:"required,max=50"`
	IssuedBy       string     `json:"issued_by" validate:"max=100"`
	IssueDate      *time.Time `json:"issue_date,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	DocumentNumber string     `json:"document_number" validate:"max=100"`
}

// List returns the documents owned by userID, never another user's.
func (s *DocumentService) List(ctx context.Context, userID string) ([]model.Document, error) {
	return s.documentRepo.ListByUserID(ctx, userID)
}

func (s *DocumentService) Get(ctx context.Context, id, userID string) (*model.Document, error) {
	return s.documentRepo.FindByIDAndUserID(ctx, id, userID)
}

func (s *DocumentService) Create(ctx context.Context, userID string, req DocumentRequest) (*model.Document, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	// The owner record must still exist
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Description:    req.Description,
		FileSize:       req.FileSize,
		FileType:       req.FileType,
		IssuedBy:       req.IssuedBy,
		IssueDate:      req.IssueDate,
		ExpiryDate:     req.ExpiryDate,
		DocumentNumber: req.DocumentNumber,
		Verified:       false, // New documents are not verified by default
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.documentRepo.Create(ctx, tx, doc); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return doc, nil
}

// Update rewrites the user-settable fields of an owned document. Owner and
// verified flag are never altered here.
func (s *DocumentService) Update(ctx context.Context, id, userID string, req DocumentRequest) (*model.Document, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	doc.Name = req.Name
	doc.Description = req.Description
	doc.FileSize = req.FileSize
	doc.FileType = req.FileType
	doc.IssuedBy = req.IssuedBy
	doc.IssueDate = req.IssueDate
	doc.ExpiryDate = req.ExpiryDate
	doc.DocumentNumber = req.DocumentNumber

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.documentRepo.FindByIDAndUserID(ctx, id, userID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.documentRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Verify flips the verified flag. The lookup is by document id alone;
// authorization is purely by role, regardless of who owns the document.
// Verifying an already verified document is a no-op that stays verified.
func (s *DocumentService) Verify(ctx context.Context, id string, roles []string) (*model.Document, error) {
	if !authz.Permitted(authz.OpVerifyDocument, roles) {
		return nil, common.ErrForbidden
	}

	doc, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Verified = true

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.documentRepo.Update(ctx, tx, doc); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return doc, nil
}

// Reject is a message-only outcome: the document must exist and the caller
// must hold a moderator or admin role, but no stored state changes. There
// is no un-verify transition.
func (s *DocumentService) Reject(ctx context.Context, id string, roles []string) error {
	if !authz.Permitted(authz.OpRejectDocument, roles) {
		return common.ErrForbidden
	}

	_, err := s.documentRepo.FindByID(ctx, id)
	return err
}

func (s *DocumentService) SearchByName(ctx context.Context, name string) ([]model.Document, error) {
	return s.documentRepo.SearchByName(ctx, name)
}

func (s *DocumentService) ListUnverified(ctx context.Context, roles []string) ([]model.Document, error) {
	if !authz.Permitted(authz.OpListUnverified, roles) {
		return nil, common.ErrForbidden
	}
	return s.documentRepo.ListUnverified(ctx)
}
