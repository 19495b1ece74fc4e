package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/session"
)

type authRepository interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Signup(ctx context.Context, loginID, password string) (string, error)
}

type sessionManager interface {
	Login(ctx context.Context, token, role, loginID string) (session.Session, error)
	Logout(ctx context.Context) error
	Current() session.Session
}

// AuthService provides the login, signup and logout use cases.
type AuthService struct {
	repo      authRepository
	sessions  sessionManager
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authRepository, sessions sessionManager, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, sessions: sessions, validator: validate, logger: logger, now: time.Now}
}

// Login authenticates against the API and stores the issued token. A failed
// login leaves any existing session untouched.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*dto.SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "login id and password are required")
	}

	res, err := s.repo.Login(ctx, req)
	if err != nil {
		s.logger.Info("admin login rejected", zap.String("login_id", req.LoginID), zap.Error(err))
		return nil, withFallback(err, "Login failed")
	}
	if res == nil || res.Token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Login failed")
	}

	current, err := s.sessions.Login(ctx, res.Token, res.Role, req.LoginID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	s.logger.Info("admin logged in", zap.String("login_id", req.LoginID), zap.String("role", res.Role))
	view := s.view(current)
	return &view, nil
}

// Signup registers a new administrator. Passwords are compared before any
// request is sent.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	if req.Password != req.ConfirmPassword {
		return "", appErrors.Clone(appErrors.ErrValidation, "Passwords do not match!")
	}
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "login id and password are required")
	}
	message, err := s.repo.Signup(ctx, req.LoginID, req.Password)
	if err != nil {
		return "", withFallback(err, "An error occurred while signing up.")
	}
	return notice(message, "Admin registered successfully"), nil
}

// Logout clears the stored session. Registered views reset through the
// session's logout hooks.
func (s *AuthService) Logout(ctx context.Context) error {
	loginID := s.sessions.Current().LoginID
	if err := s.sessions.Logout(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	s.logger.Info("admin logged out", zap.String("login_id", loginID))
	return nil
}

// Current describes the active session.
func (s *AuthService) Current() dto.SessionView {
	return s.view(s.sessions.Current())
}

func (s *AuthService) view(current session.Session) dto.SessionView {
	return dto.SessionView{
		Active:    current.Active(),
		Role:      current.Role,
		LoginID:   current.LoginID,
		Subject:   current.Subject,
		ExpiresAt: current.Expires,
		Expired:   current.Expired(s.now()),
	}
}
