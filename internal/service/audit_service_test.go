package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-admin/internal/models"
)

type memoryAudit struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	fails   int
}

func (m *memoryAudit) Create(_ context.Context, entry *models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails > 0 {
		m.fails--
		return errors.New("db down")
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func TestAuditServiceWritesInBackground(t *testing.T) {
	writer := &memoryAudit{fails: 1}
	svc := NewAuditService(writer, nil, AuditConfig{Workers: 1, Retries: 2})
	require.True(t, svc.Enabled())

	svc.Start(context.Background())
	svc.Record(models.AuditEntry{Action: models.AuditActionDelete, Resource: "students"})
	svc.Record(models.AuditEntry{Action: models.AuditActionLogin, Resource: "session"})
	svc.Stop()

	writer.mu.Lock()
	defer writer.mu.Unlock()
	require.Len(t, writer.entries, 2)
	assert.ElementsMatch(t, []string{"DELETE", "LOGIN"}, []string{writer.entries[0].Action, writer.entries[1].Action})
}

func TestAuditServiceDisabledWithoutWriter(t *testing.T) {
	svc := NewAuditService(nil, nil, AuditConfig{})
	assert.False(t, svc.Enabled())
	svc.Start(context.Background())
	svc.Record(models.AuditEntry{Action: models.AuditActionCreate})
	svc.Stop()

	var missing *AuditService
	assert.False(t, missing.Enabled())
}
