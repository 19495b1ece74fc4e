package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
)

type internshipRepository interface {
	ListAll(ctx context.Context) ([]models.Internship, error)
	ListWithoutInternship(ctx context.Context) ([]models.StudentWithoutInternship, error)
}

// InternshipView is the read-only internship page: the internship table,
// filtered per request by batch, and the students still without an internship
// grouped by batch.
type InternshipView struct {
	repo      internshipRepository
	batchRepo batchLister
	session   sessionState
	logger    *zap.Logger

	internships *Collection[models.Internship]
	without     *Collection[models.StudentWithoutInternship]
	batches     *Collection[models.Batch]

	mu       sync.Mutex
	expanded map[int64]bool
}

// NewInternshipView constructs an InternshipView.
func NewInternshipView(repo internshipRepository, batches batchLister, session sessionState, logger *zap.Logger) *InternshipView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InternshipView{
		repo:        repo,
		batchRepo:   batches,
		session:     session,
		logger:      logger.With(zap.String("view", "internships")),
		internships: NewCollection[models.Internship](),
		without:     NewCollection[models.StudentWithoutInternship](),
		batches:     NewCollection[models.Batch](),
		expanded:    make(map[int64]bool),
	}
}

// Load fetches every collection of the page. A response that lands after a
// reset is dropped.
func (v *InternshipView) Load(ctx context.Context) error {
	if err := requireSession(v.session); err != nil {
		return err
	}
	if err := v.loadInternships(ctx); err != nil {
		return err
	}
	refetchQuietly(ctx, v.logger, "internships", v.loadWithout, func(ctx context.Context) error {
		return loadBatches(ctx, v.session, v.batchRepo, v.batches)
	})
	return nil
}

// Loaded reports whether the internship table has been fetched since the last reset.
func (v *InternshipView) Loaded() bool {
	return v.internships.Loaded()
}

// Invalidate marks the page for a fetch on next use.
func (v *InternshipView) Invalidate() {
	v.internships.Invalidate()
}

func (v *InternshipView) loadInternships(ctx context.Context) error {
	ticket := v.internships.Begin()
	items, err := v.repo.ListAll(ctx)
	if err != nil {
		v.logger.Warn("internship fetch failed", zap.Error(err))
		v.internships.Fail(ticket)
		return withFallback(err, "Failed to fetch internships")
	}
	if !v.internships.Commit(ticket, items) {
		v.logger.Debug("discarded superseded internship response")
	}
	return nil
}

func (v *InternshipView) loadWithout(ctx context.Context) error {
	ticket := v.without.Begin()
	items, err := v.repo.ListWithoutInternship(ctx)
	if err != nil {
		v.without.Fail(ticket)
		return err
	}
	v.without.Commit(ticket, items)
	return nil
}

// Rows renders the internship table, restricted to batchID when set.
func (v *InternshipView) Rows(batchID *int64) []dto.InternshipRow {
	items := v.internships.Items()
	rows := make([]dto.InternshipRow, 0, len(items))
	for _, in := range items {
		if batchID != nil && !models.SameID(in.BatchID, batchID) {
			continue
		}
		rows = append(rows, dto.InternshipRow{
			ID:             in.ID,
			StudentID:      in.StudentID,
			StudentName:    in.StudentName,
			BatchID:        in.BatchID,
			Batch:          batchLabel(v.batches, in.BatchID),
			Organization:   in.Organization,
			Type:           in.Type,
			CompletionYear: in.CompletionYear.String(),
			Files:          in.Files(),
		})
	}
	return rows
}

// Groups lists, for every batch, the students without an internship. Students
// are only included for expanded groups.
func (v *InternshipView) Groups() []dto.BatchGroup {
	students := v.without.Items()
	byBatch := make(map[int64][]models.StudentWithoutInternship)
	for _, s := range students {
		if s.BatchID != nil {
			byBatch[*s.BatchID] = append(byBatch[*s.BatchID], s)
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	batches := v.batches.Items()
	groups := make([]dto.BatchGroup, 0, len(batches))
	for _, b := range batches {
		group := dto.BatchGroup{
			BatchID:  b.ID,
			Batch:    b.Label(),
			Count:    len(byBatch[b.ID]),
			Expanded: v.expanded[b.ID],
		}
		if group.Expanded {
			group.Students = byBatch[b.ID]
		}
		groups = append(groups, group)
	}
	return groups
}

// Toggle flips a group between expanded and collapsed and returns the new state.
func (v *InternshipView) Toggle(batchID int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expanded[batchID] = !v.expanded[batchID]
	return v.expanded[batchID]
}

// Batches returns the batch filter dropdown.
func (v *InternshipView) Batches() []dto.Option {
	return batchOptions(v.batches)
}

// Reset drops the view state.
func (v *InternshipView) Reset() {
	v.internships.Reset()
	v.without.Reset()
	v.batches.Reset()
	v.mu.Lock()
	v.expanded = make(map[int64]bool)
	v.mu.Unlock()
}
