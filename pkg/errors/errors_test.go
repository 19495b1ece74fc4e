package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrConfirmationRequired, "Are you sure you want to delete this batch?")
	assert.True(t, errors.Is(err, ErrConfirmationRequired))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Are you sure you want to delete this batch?", err.Message)
}

func TestUpstreamMirrorsStatus(t *testing.T) {
	err := Upstream(http.StatusConflict, "login_id already exists")
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, "login_id already exists", err.Error())
	assert.True(t, errors.Is(err, ErrUpstream))

	weird := Upstream(http.StatusOK, "odd")
	assert.Equal(t, http.StatusBadGateway, weird.Status)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	wrapped := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, wrapped.Code)
	assert.Nil(t, FromError(nil))

	typed := FromError(fmt.Errorf("ctx: %w", ErrNoSession))
	assert.Equal(t, ErrNoSession.Code, typed.Code)
}
