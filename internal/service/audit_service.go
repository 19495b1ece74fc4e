package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/pkg/jobs"
)

type auditWriter interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
}

type auditQueue interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job jobs.Job) error
}

// AuditService journals console mutations in the background. Without a
// writer every entry is discarded.
type AuditService struct {
	writer auditWriter
	queue  auditQueue
	logger *zap.Logger
}

// AuditConfig tunes the journal queue.
type AuditConfig struct {
	Workers int
	Retries int
}

// NewAuditService constructs an AuditService. writer may be nil.
func NewAuditService(writer auditWriter, logger *zap.Logger, cfg AuditConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AuditService{writer: writer, logger: logger}
	if writer != nil {
		svc.queue = jobs.NewQueue("audit", svc.handle, jobs.QueueConfig{
			Workers:    cfg.Workers,
			MaxRetries: cfg.Retries,
			Logger:     logger,
		})
	}
	return svc
}

// Enabled reports whether entries are persisted.
func (s *AuditService) Enabled() bool {
	return s != nil && s.queue != nil
}

// Start launches the journal workers.
func (s *AuditService) Start(ctx context.Context) {
	if s.Enabled() {
		s.queue.Start(ctx)
	}
}

// Stop flushes pending entries.
func (s *AuditService) Stop() {
	if s.Enabled() {
		s.queue.Stop()
	}
}

// Record queues an entry. It never blocks the request.
func (s *AuditService) Record(entry models.AuditEntry) {
	if !s.Enabled() {
		return
	}
	if err := s.queue.Enqueue(jobs.Job{Kind: entry.Action, Payload: entry}); err != nil {
		s.logger.Warn("audit entry dropped", zap.String("action", entry.Action), zap.String("resource", entry.Resource), zap.Error(err))
	}
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.AuditEntry)
	if !ok {
		return fmt.Errorf("unexpected audit payload %T", job.Payload)
	}
	return s.writer.Create(ctx, &entry)
}
