package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

// Envelope represents the common console response contract.
type Envelope struct {
	Data   interface{}            `json:"data,omitempty"`
	Notice string                 `json:"notice,omitempty"`
	Error  *appErrors.Error       `json:"error,omitempty"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Notice sends a success response carrying a user-facing notice, the
// console's equivalent of an alert after a completed action.
func Notice(c *gin.Context, status int, notice string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Data: data, Notice: notice})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, notice string, data interface{}) {
	Notice(c, http.StatusCreated, notice, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
