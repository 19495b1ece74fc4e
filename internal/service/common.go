package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

// sessionState is the part of session.Manager views depend on.
type sessionState interface {
	Token() string
	Role() string
}

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	// Approve confirms every prompt.
	Approve Confirmer = ConfirmFunc(func(string) bool { return true })
	// Decline rejects every prompt.
	Decline Confirmer = ConfirmFunc(func(string) bool { return false })
)

func requireSession(s sessionState) error {
	if s == nil || s.Token() == "" {
		return appErrors.ErrNoSession
	}
	return nil
}

func confirmationRequired(prompt string) error {
	return appErrors.Clone(appErrors.ErrConfirmationRequired, prompt)
}

// withFallback fills in message when the server gave no usable reason.
func withFallback(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return err
	}
	if appErr == nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
	}
	return appErrors.Clone(appErr, message)
}

// batchLabel renders the batch as "Name (Year)" or falls back to the raw id.
func batchLabel(batches *Collection[models.Batch], id *int64) string {
	if id == nil {
		return ""
	}
	if b, ok := batches.Find(*id); ok {
		return b.Label()
	}
	return strconv.FormatInt(*id, 10)
}

// refetchQuietly reloads joined collections after a mutation; failures only log.
func refetchQuietly(ctx context.Context, logger *zap.Logger, view string, loads ...func(context.Context) error) {
	for _, load := range loads {
		if err := load(ctx); err != nil {
			logger.Warn("background refetch failed", zap.String("view", view), zap.Error(err))
		}
	}
}

func notice(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

func formatKey(id int64) string {
	return fmt.Sprintf("%d", id)
}
