package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
)

type departmentRepository interface {
	entityMutator[models.Department]
}

// DepartmentView is the department management page.
type DepartmentView struct {
	*entityView[models.Department]
}

// NewDepartmentView constructs a DepartmentView.
func NewDepartmentView(repo departmentRepository, session sessionState, logger *zap.Logger) *DepartmentView {
	v := &DepartmentView{entityView: newEntityView[models.Department]("departments", models.EntityDepartment, repo, session, logger, viewMessages{
		deletePrompt: "Are you sure you want to delete this Department?",
		deleted:      "Department deleted successfully!",
		deleteFailed: "Failed to delete department",
		updated:      "Department updated successfully!",
		updateFailed: "Failed to update department",
		listFailed:   "Failed to fetch departments",
	})}
	v.fields = func(d models.Department) map[string]string {
		return map[string]string{"dept_name": d.Name}
	}
	return v
}

// Load fetches the departments.
func (v *DepartmentView) Load(ctx context.Context) error {
	return v.loadItems(ctx)
}

// Rows renders the table.
func (v *DepartmentView) Rows() []dto.DepartmentRow {
	items := v.items.Items()
	rows := make([]dto.DepartmentRow, 0, len(items))
	for _, d := range items {
		rows = append(rows, dto.DepartmentRow{ID: d.ID, Name: d.Name})
	}
	return rows
}

// Reset drops the view state.
func (v *DepartmentView) Reset() {
	v.reset()
}
