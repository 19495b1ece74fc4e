package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*dto.SessionView, error)
	Signup(ctx context.Context, req models.SignupRequest) (string, error)
	Logout(ctx context.Context) error
	Current() dto.SessionView
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Log in as administrator
// @Description Exchanges admin credentials for an API token held by the console
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /session [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	view, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	setAuditLogin(c, req.LoginID)
	response.Created(c, "Login successful", view)
}

// Session godoc
// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Current())
}

// Logout godoc
// @Summary Log out
// @Description Clears the stored token and role and resets every view
// @Tags Session
// @Success 204
// @Router /session [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	setAuditLogin(c, h.service.Current().LoginID)
	if err := h.service.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Signup godoc
// @Summary Register an administrator
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Signup payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid signup payload"))
		return
	}
	message, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message, nil)
}
