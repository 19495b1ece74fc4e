package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

// AuthRepository calls the unauthenticated admin endpoints.
type AuthRepository struct {
	client APIClient
}

// NewAuthRepository constructs an AuthRepository.
func NewAuthRepository(client APIClient) *AuthRepository {
	return &AuthRepository{client: client}
}

// Login exchanges credentials for a token and role.
func (r *AuthRepository) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	resp, err := r.client.Public(ctx, http.MethodPost, "/api/admin/login", req)
	if err != nil {
		return nil, err
	}
	var out models.LoginResponse
	if err := resp.Decode(&out); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "")
	}
	return &out, nil
}

// Signup registers a new admin and returns the server message.
func (r *AuthRepository) Signup(ctx context.Context, loginID, password string) (string, error) {
	body := map[string]string{"login_id": loginID, "password": password}
	resp, err := r.client.Public(ctx, http.MethodPost, "/signup/admin", body)
	if err != nil {
		return "", err
	}
	return resp.Message(), nil
}
