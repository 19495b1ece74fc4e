package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
)

// batchDuration is the number of years between a batch's start and end.
const batchDuration = 4

type batchRepository interface {
	entityMutator[models.Batch]
}

type departmentLister interface {
	List(ctx context.Context) ([]models.Department, error)
}

// BatchView is the batch management page.
type BatchView struct {
	*entityView[models.Batch]
	departmentRepo departmentLister
	departments    *Collection[models.Department]
}

// NewBatchView constructs a BatchView.
func NewBatchView(repo batchRepository, departments departmentLister, session sessionState, logger *zap.Logger) *BatchView {
	v := &BatchView{
		entityView: newEntityView[models.Batch]("batches", models.EntityBatch, repo, session, logger, viewMessages{
			deletePrompt: "Are you sure you want to delete this batch?",
			deleted:      "Batch deleted successfully!",
			deleteFailed: "Failed to delete batch",
			updated:      "Batch updated successfully!",
			updateFailed: "Failed to update batch",
			listFailed:   "Failed to fetch batches",
		}),
		departmentRepo: departments,
		departments:    NewCollection[models.Department](),
	}
	v.fields = func(b models.Batch) map[string]string {
		return map[string]string{
			"batch_name": b.Name,
			"batch_year": b.Year.String(),
			"dept_id":    models.FormatID(b.DeptID),
		}
	}
	v.stale = func(b models.Batch) bool {
		return b.DeptID != nil && b.DeptName == "" && !v.departments.Has(*b.DeptID)
	}
	v.settle = func(cached, merged models.Batch) models.Batch {
		if !models.SameID(cached.DeptID, merged.DeptID) && merged.DeptName == cached.DeptName {
			merged.DeptName = ""
		}
		return merged
	}
	v.reloadJoins = v.loadDepartments
	return v
}

// Load fetches batches and departments. A department failure only degrades
// the department column.
func (v *BatchView) Load(ctx context.Context) error {
	if err := v.loadItems(ctx); err != nil {
		return err
	}
	refetchQuietly(ctx, v.logger, v.name, v.loadDepartments)
	return nil
}

func (v *BatchView) loadDepartments(ctx context.Context) error {
	if err := requireSession(v.session); err != nil {
		return err
	}
	ticket := v.departments.Begin()
	items, err := v.departmentRepo.List(ctx)
	if err != nil {
		v.departments.Fail(ticket)
		return withFallback(err, "Failed to fetch departments")
	}
	v.departments.Commit(ticket, items)
	return nil
}

// Rows renders the table.
func (v *BatchView) Rows() []dto.BatchRow {
	items := v.items.Items()
	rows := make([]dto.BatchRow, 0, len(items))
	for _, b := range items {
		row := dto.BatchRow{ID: b.ID, Name: b.Name, DeptID: b.DeptID, Department: v.departmentName(b)}
		if start, ok := b.Year.Int(); ok {
			row.StartYear = strconv.Itoa(start)
			row.EndYear = strconv.Itoa(start + batchDuration)
		}
		rows = append(rows, row)
	}
	return rows
}

func (v *BatchView) departmentName(b models.Batch) string {
	if b.DeptName != "" {
		return b.DeptName
	}
	if b.DeptID != nil {
		if d, ok := v.departments.Find(*b.DeptID); ok {
			return d.Name
		}
	}
	return "Unknown"
}

// Departments returns the department dropdown of the edit form.
func (v *BatchView) Departments() []dto.Option {
	items := v.departments.Items()
	out := make([]dto.Option, 0, len(items))
	for _, d := range items {
		out = append(out, dto.Option{ID: d.ID, Label: d.Name})
	}
	return out
}

// Reset drops the view state.
func (v *BatchView) Reset() {
	v.reset()
	v.departments.Reset()
}
