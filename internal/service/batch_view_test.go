package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

// batchServer is an in-memory stand-in for the batch endpoints that stores
// created records so they show up in later lists.
type batchServer struct {
	fakeRepo[models.Batch]
	nextID int64
}

func (s *batchServer) Create(_ context.Context, payload map[string]interface{}) (repository.Outcome[models.Batch], error) {
	s.nextID++
	b := models.Batch{ID: s.nextID, Name: payload["batch_name"].(string)}
	if y, ok := payload["batch_year"].(int64); ok {
		b.Year = models.Year(formatKey(y))
	}
	if d, ok := payload["dept_id"].(int64); ok {
		b.DeptID = models.IDPtr(d)
	}
	s.items = append(s.items, b)
	return repository.Outcome[models.Batch]{Record: &b, Message: "Batch created"}, nil
}

func TestBatchCreateThenListRoundTrip(t *testing.T) {
	sess := adminSession()
	batches := &batchServer{}
	departments := &fakeRepo[models.Department]{items: []models.Department{{ID: 3, Name: "Computer Science"}}}

	create := NewCreateView(CreateRepositories{Departments: departments, Batches: batches}, sess, validator.New(), zap.NewNop())
	res, err := create.Create(context.Background(), models.EntityBatch, map[string]string{
		"batch_name": "Fall25", "batch_year": "2025", "dept_id": "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "Batch added successfully!", res.Notice)

	view := NewBatchView(batches, departments, sess, zap.NewNop())
	require.NoError(t, view.Load(context.Background()))
	rows := view.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, dto.BatchRow{ID: 1, Name: "Fall25", StartYear: "2025", EndYear: "2029", DeptID: models.IDPtr(3), Department: "Computer Science"}, rows[0])
}

func TestBatchRowsFallBack(t *testing.T) {
	batches := &fakeRepo[models.Batch]{items: []models.Batch{
		{ID: 1, Name: "A", Year: "2024", DeptID: deptID(99)},
		{ID: 2, Name: "B", Year: "unknown", DeptID: deptID(1), DeptName: "Embedded"},
		{ID: 3, Name: "C"},
	}}
	departments := &fakeRepo[models.Department]{listErr: errors.New("down")}
	view := NewBatchView(batches, departments, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	rows := view.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Unknown", rows[0].Department)
	assert.Equal(t, "2028", rows[0].EndYear)
	assert.Equal(t, "Embedded", rows[1].Department)
	assert.Empty(t, rows[1].StartYear)
	assert.Empty(t, rows[1].EndYear)
	assert.Equal(t, "Unknown", rows[2].Department)
}

func TestBatchUpdatePatchesFromServerRecord(t *testing.T) {
	batches := &fakeRepo[models.Batch]{items: []models.Batch{{ID: 1, Name: "A", Year: "2024", DeptID: deptID(1)}, {ID: 2, Name: "B", Year: "2023"}}}
	departments := &fakeRepo[models.Department]{items: []models.Department{{ID: 1, Name: "CS"}, {ID: 2, Name: "EE"}}}
	view := NewBatchView(batches, departments, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	batches.updateOut = repository.Outcome[models.Batch]{Record: &models.Batch{ID: 1, Name: "A2", Year: "2025", DeptID: deptID(2)}}
	res, err := view.Update(context.Background(), 1, map[string]string{"batch_name": "A2", "batch_year": "2025", "dept_id": "2"})
	require.NoError(t, err)
	assert.False(t, res.Refetched)
	assert.Equal(t, "Batch updated successfully!", res.Notice)
	assert.Equal(t, map[string]interface{}{"batch_name": "A2", "batch_year": int64(2025), "dept_id": int64(2)}, batches.updatePayload)
	assert.Equal(t, 1, batches.listCalls)

	rows := view.Rows()
	assert.Equal(t, "A2", rows[0].Name)
	assert.Equal(t, "EE", rows[0].Department)
	assert.Equal(t, "B", rows[1].Name)
	_, open := view.Draft()
	assert.False(t, open)
}

func TestBatchUpdateMergesEchoOverJoinedRow(t *testing.T) {
	batches := &fakeRepo[models.Batch]{items: []models.Batch{
		{ID: 1, Name: "A", Year: "2024", DeptID: deptID(1), DeptName: "Computer Science"},
		{ID: 2, Name: "B", Year: "2023", DeptID: deptID(1), DeptName: "Computer Science"},
	}}
	departments := &fakeRepo[models.Department]{items: []models.Department{{ID: 1, Name: "CS"}, {ID: 2, Name: "EE"}}}
	view := NewBatchView(batches, departments, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	batches.updateOut = repository.Outcome[models.Batch]{
		Record: &models.Batch{ID: 1, Name: "A2", Year: "2024", DeptID: deptID(1)},
		Fields: json.RawMessage(`{"batch_id":1,"batch_name":"A2"}`),
	}
	res, err := view.Update(context.Background(), 1, map[string]string{"batch_name": "A2"})
	require.NoError(t, err)
	assert.False(t, res.Refetched)
	rows := view.Rows()
	assert.Equal(t, "A2", rows[0].Name)
	assert.Equal(t, "2024", rows[0].StartYear)
	assert.Equal(t, "Computer Science", rows[0].Department)

	batches.updateOut = repository.Outcome[models.Batch]{
		Record: &models.Batch{ID: 2, Name: "B", Year: "2023", DeptID: deptID(2)},
		Fields: json.RawMessage(`{"batch_id":2,"dept_id":2}`),
	}
	_, err = view.Update(context.Background(), 2, map[string]string{"dept_id": "2"})
	require.NoError(t, err)
	assert.Equal(t, "EE", view.Rows()[1].Department)
	assert.Equal(t, 1, batches.listCalls)
}

func TestBatchUpdateRefetchesOnUnknownDepartment(t *testing.T) {
	batches := &fakeRepo[models.Batch]{items: []models.Batch{{ID: 1, Name: "A", DeptID: deptID(1)}}}
	departments := &fakeRepo[models.Department]{items: []models.Department{{ID: 1, Name: "CS"}}}
	view := NewBatchView(batches, departments, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	batches.updateOut = repository.Outcome[models.Batch]{Record: &models.Batch{ID: 1, Name: "A", DeptID: deptID(5)}}
	batches.items = []models.Batch{{ID: 1, Name: "A", DeptID: deptID(5)}}
	departments.items = append(departments.items, models.Department{ID: 5, Name: "Math"})

	res, err := view.Update(context.Background(), 1, map[string]string{"dept_id": "5"})
	require.NoError(t, err)
	assert.True(t, res.Refetched)
	assert.Equal(t, 2, departments.listCalls)
	assert.Equal(t, "Math", view.Rows()[0].Department)
}

func TestBatchUpdateFailureKeepsDraft(t *testing.T) {
	batches := &fakeRepo[models.Batch]{items: []models.Batch{{ID: 1, Name: "A"}}}
	view := NewBatchView(batches, &fakeRepo[models.Department]{}, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	_, err := view.BeginEdit(context.Background(), 1)
	require.NoError(t, err)
	_, err = view.SetField("batch_name", "B")
	require.NoError(t, err)

	batches.updateErr = appErrors.Upstream(500, "")
	_, err = view.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to update batch", appErrors.FromError(err).Message)

	draft, open := view.Draft()
	require.True(t, open)
	assert.Equal(t, "B", draft.Get("batch_name"))
	assert.Equal(t, "A", view.Rows()[0].Name)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	batches := &fakeRepo[models.Batch]{items: []models.Batch{{ID: 1}, {ID: 2}, {ID: 3}}}
	view := NewBatchView(batches, &fakeRepo[models.Department]{}, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	_, err := view.Delete(context.Background(), 2, Decline)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConfirmationRequired))
	assert.Equal(t, "Are you sure you want to delete this batch?", appErrors.FromError(err).Message)
	assert.Equal(t, 0, batches.deleteCalls)

	res, err := view.Delete(context.Background(), 2, Approve)
	require.NoError(t, err)
	assert.Equal(t, "Batch deleted successfully!", res.Notice)
	ids := []int64{}
	for _, r := range view.Rows() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestDeleteFailureLeavesState(t *testing.T) {
	departments := &fakeRepo[models.Department]{items: []models.Department{{ID: 1}, {ID: 2}}}
	view := NewDepartmentView(departments, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	departments.deleteErr = appErrors.Upstream(409, "Department has batches")
	_, err := view.Delete(context.Background(), 1, Approve)
	require.Error(t, err)
	assert.Equal(t, "Department has batches", appErrors.FromError(err).Message)
	assert.Len(t, view.Rows(), 2)
}

func TestLoadWithoutSessionSendsNothing(t *testing.T) {
	departments := &fakeRepo[models.Department]{}
	view := NewDepartmentView(departments, &fakeSession{}, nil)
	err := view.Load(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrNoSession))
	assert.Equal(t, 0, departments.listCalls)
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	departments := &fakeRepo[models.Department]{items: []models.Department{{ID: 1}}}
	view := NewDepartmentView(departments, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))
	require.Len(t, view.Rows(), 1)

	departments.listErr = appErrors.ErrUpstreamUnavailable
	err := view.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, view.Rows())
	assert.False(t, view.Loaded())
}
