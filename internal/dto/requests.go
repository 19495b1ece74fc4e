package dto

import (
	"time"

	"github.com/noah-isme/internship-admin/internal/models"
)

// StudentQuery filters the student list. Search and batch compose with AND.
type StudentQuery struct {
	Search  string
	BatchID *int64
}

// CreateEntityRequest is the body of POST /entities.
type CreateEntityRequest struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields"`
}

// MutationResult describes a completed create, update or delete.
type MutationResult struct {
	Notice string      `json:"notice"`
	Record interface{} `json:"record,omitempty"`
	// Refetched is set when the list was reloaded instead of patched.
	Refetched bool `json:"refetched"`
}

// ObjectHandle is a short-lived reference to a spooled file.
type ObjectHandle struct {
	ID          string             `json:"id"`
	Filename    string             `json:"filename"`
	ContentType string             `json:"content_type"`
	Size        int64              `json:"size"`
	Disposition models.Disposition `json:"disposition"`
	URL         string             `json:"url"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// SessionView is the public shape of the current session.
type SessionView struct {
	Active    bool       `json:"active"`
	Role      string     `json:"role,omitempty"`
	LoginID   string     `json:"login_id,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}
