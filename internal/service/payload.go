package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

const loginIDField = "login_id"

// createPayload validates a new record's draft and builds the request body.
func createPayload(v *validator.Validate, schema models.EntitySchema, draft models.Draft) (map[string]interface{}, error) {
	payload := make(map[string]interface{}, len(schema.Fields))
	for _, field := range schema.Fields {
		raw := draft.Get(field.Name)
		if err := validateField(v, field, raw); err != nil {
			return nil, err
		}
		if _, present := draft.Fields[field.Name]; !present {
			continue
		}
		payload[field.Name] = coerce(field, raw)
	}
	return payload, nil
}

// updatePayload builds the body of an update. A blank password is omitted so
// the stored one is kept, and an unchanged login id is omitted so the server
// does not report it as taken.
func updatePayload(schema models.EntitySchema, draft models.Draft) map[string]interface{} {
	payload := make(map[string]interface{}, len(schema.Fields))
	for _, field := range schema.Fields {
		raw, present := draft.Fields[field.Name]
		if !present {
			continue
		}
		if field.Type == models.FieldPassword && strings.TrimSpace(raw) == "" {
			continue
		}
		if field.Name == loginIDField {
			if orig, ok := draft.Original(field.Name); ok && orig == raw {
				continue
			}
		}
		payload[field.Name] = coerce(field, raw)
	}
	return payload
}

// coerce turns number fields into a number or null and ref fields into a
// positive id or null. Text passes through.
func coerce(field models.FieldSpec, raw string) interface{} {
	switch field.Type {
	case models.FieldNumber:
		n, ok := parseNumber(raw)
		if !ok {
			return nil
		}
		return n
	case models.FieldRef:
		n, ok := parseNumber(raw)
		if !ok {
			return nil
		}
		if id, isInt := n.(int64); isInt && id > 0 {
			return id
		}
		return nil
	default:
		return raw
	}
}

func parseNumber(raw string) (interface{}, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f), true
	}
	return f, true
}

func validateField(v *validator.Validate, field models.FieldSpec, raw string) error {
	value := strings.TrimSpace(raw)
	if field.Type == models.FieldPassword {
		value = raw
	}
	if field.Required {
		if err := v.Var(value, "required"); err != nil {
			return fieldError(err, fmt.Sprintf("%s is required", field.Label))
		}
	}
	if value == "" {
		return nil
	}
	switch field.Type {
	case models.FieldNumber, models.FieldRef:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fieldError(err, fmt.Sprintf("%s must be a whole number", field.Label))
		}
		if field.Rules != "" {
			if err := v.Var(n, field.Rules); err != nil {
				return fieldError(err, fmt.Sprintf("%s is out of range", field.Label))
			}
		}
	default:
		if field.Rules != "" {
			if err := v.Var(value, field.Rules); err != nil {
				return fieldError(err, fmt.Sprintf("%s is invalid", field.Label))
			}
		}
	}
	return nil
}

func fieldError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
