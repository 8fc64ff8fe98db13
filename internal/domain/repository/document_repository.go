package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"digilocker/internal/common"
	"digilocker/internal/domain/model"
)

type DocumentRepository interface {
	Create(ctx context.Context, tx *sql.Tx, doc *model.Document) error
	Update(ctx context.Context, tx *sql.Tx, doc *model.Document) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
	FindByID(ctx context.Context, id string) (*model.Document, error)
	FindByIDAndUserID(ctx context.Context, id, userID string) (*model.Document, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Document, error)
	SearchByName(ctx context.Context, name string) ([]model.Document, error)
	ListUnverified(ctx context.Context) ([]model.Document, error)
}

type pgDocumentRepository struct {
	db *sql.DB
}

func NewPgDocumentRepository(db *sql.DB) DocumentRepository {
	return &pgDocumentRepository{db: db}
}

func (r *pgDocumentRepository) Create(ctx context.Context, tx *sql.Tx, d *model.Document) error {
	query := `INSERT INTO documents (id, user_id, name, description, file_size, file_type, issued_by, issue_date, expiry_date, document_number, verified)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, d.ID, d.UserID, d.Name, d.Description, d.FileSize, d.FileType, d.IssuedBy, d.IssueDate, d.ExpiryDate, d.DocumentNumber, d.Verified)
	} else {
		_, err = r.db.ExecContext(ctx, query, d.ID, d.UserID, d.Name, d.Description, d.FileSize, d.FileType, d.IssuedBy, d.IssueDate, d.ExpiryDate, d.DocumentNumber, d.Verified)
	}
	if err != nil {
		return fmt.Errorf("pgDocumentRepository.Create: %w", err)
	}
	return nil
}

// Update writes the mutable fields and the verified flag. Owner is never
// part of the SET list.
func (r *pgDocumentRepository) Update(ctx context.Context, tx *sql.Tx, d *model.Document) error {
	query := `UPDATE documents SET
	            name = $1, description = $2, file_size = $3, file_type = $4,
	            issued_by = $5, issue_date = $6, expiry_date = $7, document_number = $8,
	            verified = $9, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $10`

	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, d.Name, d.Description, d.FileSize, d.FileType, d.IssuedBy, d.IssueDate, d.ExpiryDate, d.DocumentNumber, d.Verified, d.ID)
	} else {
		res, err = r.db.ExecContext(ctx, query, d.Name, d.Description, d.FileSize, d.FileType, d.IssuedBy, d.IssueDate, d.ExpiryDate, d.DocumentNumber, d.Verified, d.ID)
	}
	if err != nil {
		return fmt.Errorf("pgDocumentRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgDocumentRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM documents WHERE id = $1`

	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, id)
	} else {
		res, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgDocumentRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

const documentSelect = `
	SELECT d.id, d.user_id, d.name, d.description, d.file_size, d.file_type,
	       d.issued_by, d.issue_date, d.expiry_date, d.document_number, d.verified,
	       u.username AS owner_username, d.created_at, d.updated_at
	FROM documents d
	JOIN users u ON d.user_id = u.id`

func scanDocument(row interface{ Scan(...interface{}) error }) (*model.Document, error) {
	d := &model.Document{}
	err := row.Scan(
		&d.ID, &d.UserID, &d.Name, &d.Description, &d.FileSize, &d.FileType,
		&d.IssuedBy, &d.IssueDate, &d.ExpiryDate, &d.DocumentNumber, &d.Verified,
		&d.OwnerUsername, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *pgDocumentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	query := documentSelect + ` WHERE d.id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDocumentRepository.FindByID: %w", err)
	}
	return d, nil
}

func (r *pgDocumentRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*model.Document, error) {
	query := documentSelect + ` WHERE d.id = $1 AND d.user_id = $2`
	d, err := scanDocument(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDocumentRepository.FindByIDAndUserID: %w", err)
	}
	return d, nil
}

func (r *pgDocumentRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgDocumentRepository query: %w", err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("pgDocumentRepository scan: %w", err)
		}
		docs = append(docs, *d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgDocumentRepository rows.Err: %w", err)
	}
	return docs, nil
}

func (r *pgDocumentRepository) ListByUserID(ctx context.Context, userID string) ([]model.Document, error) {
	query := documentSelect + ` WHERE d.user_id = $1 ORDER BY d.created_at DESC`
	return r.queryMany(ctx, query, userID)
}

// SearchByName is intentionally unscoped by owner.
func (r *pgDocumentRepository) SearchByName(ctx context.Context, name string) ([]model.Document, error) {
	query := documentSelect + ` WHERE d.name ILIKE $1 ORDER BY d.created_at DESC`
	return r.queryMany(ctx, query, "%"+name+"%")
}

func (r *pgDocumentRepository) ListUnverified(ctx context.Context) ([]model.Document, error) {
	query := documentSelect + ` WHERE d.verified = FALSE ORDER BY d.created_at ASC`
	return r.queryMany(ctx, query)
}
