package service

import (
	"context"
	"sync"

	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
)

type fakeSession struct {
	token string
	role  string
}

func (f *fakeSession) Token() string { return f.token }
func (f *fakeSession) Role() string  { return f.role }

func adminSession() *fakeSession {
	return &fakeSession{token: "tok", role: "admin"}
}

type fakeRepo[T Keyed] struct {
	mu sync.Mutex

	items     []T
	listErr   error
	listCalls int

	getItem *T
	getErr  error

	createOut     repository.Outcome[T]
	createErr     error
	createCalls   int
	createPayload map[string]interface{}

	updateOut     repository.Outcome[T]
	updateErr     error
	updateCalls   int
	updatePayload map[string]interface{}

	deleteMsg   string
	deleteErr   error
	deleteCalls int
}

func (f *fakeRepo[T]) List(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]T(nil), f.items...), nil
}

func (f *fakeRepo[T]) Get(_ context.Context, id int64) (*T, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getItem != nil {
		return f.getItem, nil
	}
	for _, item := range f.items {
		if item.Key() == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo[T]) Create(_ context.Context, payload map[string]interface{}) (repository.Outcome[T], error) {
	f.createCalls++
	f.createPayload = payload
	return f.createOut, f.createErr
}

func (f *fakeRepo[T]) Update(_ context.Context, _ int64, payload map[string]interface{}) (repository.Outcome[T], error) {
	f.updateCalls++
	f.updatePayload = payload
	return f.updateOut, f.updateErr
}

func (f *fakeRepo[T]) Delete(_ context.Context, _ int64) (string, error) {
	f.deleteCalls++
	return f.deleteMsg, f.deleteErr
}

func deptID(id int64) *int64 { return models.IDPtr(id) }
