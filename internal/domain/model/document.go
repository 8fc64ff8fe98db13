package model

import (
	"time"
)

// Document is a custody record for a user's document. The owner never
// changes after creation; the verified flag starts false and is flipped
// only by an explicit moderator/admin action.
type Document struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	FileSize       int64      `json:"file_size"`
	FileType       string     `json:"file_type"`
	IssuedBy       string     `json:"issued_by"`
	IssueDate      *time.Time `json:"issue_date,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	DocumentNumber string     `json:"document_number"`
	Verified       bool       `json:"verified"`
	OwnerUsername  *string    `json:"owner_username,omitempty"` // For display
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
