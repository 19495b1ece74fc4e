package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/noah-isme/internship-admin/pkg/apiclient"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

// APIClient is the subset of apiclient.Client the repositories use.
type APIClient interface {
	Do(ctx context.Context, method, path string, body interface{}) (*apiclient.Response, error)
	Public(ctx context.Context, method, path string, body interface{}) (*apiclient.Response, error)
	Fetch(ctx context.Context, path string) (*apiclient.Blob, error)
}

// Outcome is the result of a mutation. Record is nil when the server did not
// echo the affected record back. Fields holds the echoed JSON object as sent,
// so callers can tell which attributes the server actually returned.
type Outcome[T any] struct {
	Record  *T
	Fields  json.RawMessage
	Message string
}

// resource implements list/create/update/delete for one REST collection.
type resource[T any] struct {
	client   APIClient
	endpoint string
	envelope string
	idField  string
}

func (r resource[T]) list(ctx context.Context, path string) ([]T, error) {
	resp, err := r.client.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](resp.Body)
}

func (r resource[T]) create(ctx context.Context, payload map[string]interface{}) (Outcome[T], error) {
	resp, err := r.client.Do(ctx, http.MethodPost, r.endpoint, payload)
	if err != nil {
		return Outcome[T]{}, err
	}
	return r.outcome(resp)
}

func (r resource[T]) update(ctx context.Context, id int64, payload map[string]interface{}) (Outcome[T], error) {
	resp, err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), payload)
	if err != nil {
		return Outcome[T]{}, err
	}
	return r.outcome(resp)
}

func (r resource[T]) remove(ctx context.Context, id int64) (string, error) {
	resp, err := r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil)
	if err != nil {
		return "", err
	}
	return resp.Message(), nil
}

func (r resource[T]) get(ctx context.Context, id int64) (*T, error) {
	resp, err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil)
	if err != nil {
		return nil, err
	}
	record, _, err := r.record(resp.Body)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "record not found")
	}
	return record, nil
}

func (r resource[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.endpoint, id)
}

func (r resource[T]) outcome(resp *apiclient.Response) (Outcome[T], error) {
	record, fields, err := r.record(resp.Body)
	if err != nil {
		return Outcome[T]{}, err
	}
	return Outcome[T]{Record: record, Fields: fields, Message: resp.Message()}, nil
}

// record extracts the authoritative record from `{<envelope>: {...}}` or from
// a bare object carrying the id field, along with the record's raw JSON.
// Anything else yields nil.
func (r resource[T]) record(body json.RawMessage) (*T, json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, nil, nil
	}

	raw := body
	if wrapped, ok := fields[r.envelope]; ok {
		wrapped = bytes.TrimSpace(wrapped)
		if len(wrapped) == 0 || wrapped[0] != '{' {
			return nil, nil, nil
		}
		raw = wrapped
	} else if _, ok := fields[r.idField]; !ok {
		return nil, nil, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected record in response")
	}
	return &out, raw, nil
}

// decodeList treats any non-array body as an empty list.
func decodeList[T any](body json.RawMessage) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected list in response")
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
