package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/session"
)

type studentRepository interface {
	entityMutator[models.Student]
	Get(ctx context.Context, id int64) (*models.Student, error)
}

type batchLister interface {
	List(ctx context.Context) ([]models.Batch, error)
}

// StudentView is the student management page.
type StudentView struct {
	*entityView[models.Student]
	studentRepo studentRepository
	batchRepo   batchLister
	batches     *Collection[models.Batch]
}

// NewStudentView constructs a StudentView.
func NewStudentView(repo studentRepository, batches batchLister, session sessionState, logger *zap.Logger) *StudentView {
	v := &StudentView{
		entityView: newEntityView[models.Student]("students", models.EntityStudent, repo, session, logger, viewMessages{
			deletePrompt: "Are you sure you want to delete this student?",
			deleted:      "Student deleted successfully",
			deleteFailed: "Failed to delete student",
			updated:      "Student updated successfully!",
			updateFailed: "Failed to update student",
			listFailed:   "Failed to fetch students",
		}),
		studentRepo: repo,
		batchRepo:   batches,
		batches:     NewCollection[models.Batch](),
	}
	v.fields = studentFields
	v.stale = func(s models.Student) bool {
		return s.BatchID != nil && !v.batches.Has(*s.BatchID)
	}
	v.reloadJoins = func(ctx context.Context) error {
		return loadBatches(ctx, v.session, v.batchRepo, v.batches)
	}
	return v
}

func studentFields(s models.Student) map[string]string {
	return map[string]string{
		"login_id":            s.LoginID,
		"password":            "",
		"student_name":        s.Name,
		"registration_number": s.RegistrationNumber,
		"batch_id":            models.FormatID(s.BatchID),
	}
}

// Load fetches students and batches.
func (v *StudentView) Load(ctx context.Context) error {
	if err := v.loadItems(ctx); err != nil {
		return err
	}
	refetchQuietly(ctx, v.logger, v.name, v.reloadJoins)
	return nil
}

// Rows renders the students matching q. Search and batch filter must both hold.
func (v *StudentView) Rows(q dto.StudentQuery) []dto.StudentRow {
	items := v.items.Items()
	rows := make([]dto.StudentRow, 0, len(items))
	for _, s := range items {
		if q.BatchID != nil && !models.SameID(s.BatchID, q.BatchID) {
			continue
		}
		if !matchesSearch(q.Search, s.Name, s.RegistrationNumber) {
			continue
		}
		rows = append(rows, v.row(s))
	}
	return rows
}

func (v *StudentView) row(s models.Student) dto.StudentRow {
	return dto.StudentRow{
		ID:                 s.ID,
		LoginID:            s.LoginID,
		Name:               s.Name,
		RegistrationNumber: s.RegistrationNumber,
		BatchID:            s.BatchID,
		Batch:              batchLabel(v.batches, s.BatchID),
		HasCV:              s.CV.Present(),
	}
}

// Total is the unfiltered student count.
func (v *StudentView) Total() int {
	return v.items.Len()
}

// Detail fetches a fresh copy of one student, falling back to the cached row
// when the server is unreachable or no longer knows the record.
func (v *StudentView) Detail(ctx context.Context, id int64) (dto.StudentRow, error) {
	s, err := v.fresh(ctx, id)
	if err != nil {
		return dto.StudentRow{}, err
	}
	return v.row(s), nil
}

func (v *StudentView) fresh(ctx context.Context, id int64) (models.Student, error) {
	if err := requireSession(v.session); err != nil {
		return models.Student{}, err
	}
	s, err := v.studentRepo.Get(ctx, id)
	if err == nil && s != nil {
		v.items.Replace(*s)
		return *s, nil
	}
	v.logger.Warn("student detail fetch failed", zap.Int64("student_id", id), zap.Error(err))
	if cacheable(err) {
		if cached, ok := v.items.Find(id); ok {
			return cached, nil
		}
	}
	return models.Student{}, withFallback(err, "Failed to fetch student details")
}

// cacheable reports whether a failed detail fetch may be answered from the
// list: only an unreachable server or a missing record qualifies. Auth
// failures always surface.
func cacheable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, appErrors.ErrUpstreamUnavailable) {
		return true
	}
	return appErrors.FromError(err).Status == http.StatusNotFound
}

// BeginEdit opens a draft seeded from a fresh copy of the student.
func (v *StudentView) BeginEdit(ctx context.Context, id int64) (models.Draft, error) {
	s, err := v.fresh(ctx, id)
	if err != nil {
		return models.Draft{}, err
	}
	return v.open(s), nil
}

// Update opens, fills and submits a draft in one call.
func (v *StudentView) Update(ctx context.Context, id int64, values map[string]string) (*dto.MutationResult, error) {
	if _, err := v.BeginEdit(ctx, id); err != nil {
		return nil, err
	}
	if _, err := v.SetFields(values); err != nil {
		v.CancelEdit()
		return nil, err
	}
	return v.Submit(ctx)
}

// Delete is restricted to administrators.
func (v *StudentView) Delete(ctx context.Context, id int64, confirm Confirmer) (*dto.MutationResult, error) {
	if err := requireSession(v.session); err != nil {
		return nil, err
	}
	if v.session.Role() != session.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only administrators can delete students")
	}
	return v.entityView.Delete(ctx, id, confirm)
}

// Batches returns the batch filter dropdown.
func (v *StudentView) Batches() []dto.Option {
	return batchOptions(v.batches)
}

// Reset drops the view state.
func (v *StudentView) Reset() {
	v.reset()
	v.batches.Reset()
}

func loadBatches(ctx context.Context, s sessionState, repo batchLister, into *Collection[models.Batch]) error {
	if err := requireSession(s); err != nil {
		return err
	}
	ticket := into.Begin()
	items, err := repo.List(ctx)
	if err != nil {
		into.Fail(ticket)
		return withFallback(err, "Failed to fetch batches")
	}
	into.Commit(ticket, items)
	return nil
}

func batchOptions(batches *Collection[models.Batch]) []dto.Option {
	items := batches.Items()
	out := make([]dto.Option, 0, len(items))
	for _, b := range items {
		out = append(out, dto.Option{ID: b.ID, Label: b.Label()})
	}
	return out
}
