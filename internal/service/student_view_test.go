package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

func studentFixture(t *testing.T, sess *fakeSession) (*StudentView, *fakeRepo[models.Student]) {
	t.Helper()
	students := &fakeRepo[models.Student]{items: []models.Student{
		{ID: 1, LoginID: "jdoe", Name: "John Doe", RegistrationNumber: "2021-CS-01", BatchID: models.IDPtr(10)},
		{ID: 2, LoginID: "ann", Name: "Ann Lee", RegistrationNumber: "2021-CS-02", BatchID: models.IDPtr(10)},
		{ID: 3, LoginID: "dan", Name: "Dan Brown", RegistrationNumber: "2022-EE-01", BatchID: models.IDPtr(11)},
		{ID: 4, LoginID: "joan", Name: "Joan Smith", RegistrationNumber: "2022-EE-07", BatchID: models.IDPtr(42)},
	}}
	batches := &fakeRepo[models.Batch]{items: []models.Batch{
		{ID: 10, Name: "Fall21", Year: "2021"},
		{ID: 11, Name: "Fall22", Year: "2022"},
	}}
	view := NewStudentView(students, batches, sess, nil)
	require.NoError(t, view.Load(context.Background()))
	return view, students
}

func names(rows []dto.StudentRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestStudentSearchIsCaseInsensitiveSubstring(t *testing.T) {
	view, _ := studentFixture(t, adminSession())
	assert.Equal(t, []string{"John Doe", "Joan Smith"}, names(view.Rows(dto.StudentQuery{Search: "jo"})))
	assert.Equal(t, []string{"Dan Brown", "Joan Smith"}, names(view.Rows(dto.StudentQuery{Search: "ee-"})))
	assert.Len(t, view.Rows(dto.StudentQuery{}), 4)
	assert.Equal(t, 4, view.Total())
}

func TestStudentFilterAndSearchCompose(t *testing.T) {
	view, _ := studentFixture(t, adminSession())
	rows := view.Rows(dto.StudentQuery{Search: "an", BatchID: models.IDPtr(10)})
	assert.Equal(t, []string{"Ann Lee"}, names(rows))

	rows = view.Rows(dto.StudentQuery{BatchID: models.IDPtr(11)})
	assert.Equal(t, []string{"Dan Brown"}, names(rows))
}

func TestStudentBatchLabelFallsBackToRawID(t *testing.T) {
	view, _ := studentFixture(t, adminSession())
	rows := view.Rows(dto.StudentQuery{})
	assert.Equal(t, "Fall21 (2021)", rows[0].Batch)
	assert.Equal(t, "42", rows[3].Batch)
}

func TestStudentDetailFallsBackToCache(t *testing.T) {
	view, students := studentFixture(t, adminSession())
	students.getItem = &models.Student{ID: 2, LoginID: "ann", Name: "Ann Lee-Park", BatchID: models.IDPtr(10)}

	row, err := view.Detail(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee-Park", row.Name)

	students.getItem = nil
	students.getErr = appErrors.ErrUpstreamUnavailable
	row, err = view.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", row.Name)

	_, err = view.Detail(context.Background(), 99)
	require.Error(t, err)
}

func TestStudentDetailSurfacesAuthFailures(t *testing.T) {
	view, students := studentFixture(t, adminSession())

	students.getErr = appErrors.Upstream(http.StatusForbidden, "Access denied")
	_, err := view.Detail(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)
	assert.Equal(t, "Access denied", appErrors.FromError(err).Message)

	students.getErr = appErrors.Upstream(http.StatusUnauthorized, "")
	_, err = view.BeginEdit(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
	_, open := view.Draft()
	assert.False(t, open)

	students.getErr = appErrors.Upstream(http.StatusNotFound, "Student not found")
	row, err := view.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", row.Name)
}

func TestStudentUpdateKeepsFieldsMissingFromEcho(t *testing.T) {
	view, students := studentFixture(t, adminSession())
	students.items[0].CV = true
	require.NoError(t, view.Load(context.Background()))
	require.True(t, view.Rows(dto.StudentQuery{})[0].HasCV)

	echo := `{"student_id":1,"login_id":"jdoe","student_name":"Johnny Doe","registration_number":"2021-CS-01","batch_id":10}`
	students.updateOut = repository.Outcome[models.Student]{
		Record: &models.Student{ID: 1, LoginID: "jdoe", Name: "Johnny Doe", RegistrationNumber: "2021-CS-01", BatchID: models.IDPtr(10)},
		Fields: json.RawMessage(echo),
	}

	res, err := view.Update(context.Background(), 1, map[string]string{"student_name": "Johnny Doe"})
	require.NoError(t, err)
	assert.False(t, res.Refetched)

	row := view.Rows(dto.StudentQuery{})[0]
	assert.Equal(t, "Johnny Doe", row.Name)
	assert.True(t, row.HasCV)
	assert.Equal(t, "Fall21 (2021)", row.Batch)
	assert.True(t, res.Record.(models.Student).CV.Present())
}

func TestStudentUpdateOmitsBlankPassword(t *testing.T) {
	view, students := studentFixture(t, adminSession())
	students.updateOut = repository.Outcome[models.Student]{Message: "Student updated"}

	res, err := view.Update(context.Background(), 1, map[string]string{"student_name": "Johnny Doe", "password": ""})
	require.NoError(t, err)
	assert.True(t, res.Refetched)
	assert.Equal(t, "Student updated", res.Notice)
	assert.NotContains(t, students.updatePayload, "password")
	assert.NotContains(t, students.updatePayload, "login_id")
	assert.Equal(t, "Johnny Doe", students.updatePayload["student_name"])
	assert.Equal(t, int64(10), students.updatePayload["batch_id"])
}

func TestStudentDeleteRequiresAdmin(t *testing.T) {
	view, students := studentFixture(t, &fakeSession{token: "tok", role: "advisor"})
	_, err := view.Delete(context.Background(), 1, Approve)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
	assert.Equal(t, 0, students.deleteCalls)

	admin, students := studentFixture(t, adminSession())
	students.deleteMsg = "Student removed"
	res, err := admin.Delete(context.Background(), 3, Approve)
	require.NoError(t, err)
	assert.Equal(t, "Student removed", res.Notice)
	assert.Equal(t, []string{"John Doe", "Ann Lee", "Joan Smith"}, names(admin.Rows(dto.StudentQuery{})))
}

func TestStudentDraftRejectsUnknownField(t *testing.T) {
	view, _ := studentFixture(t, adminSession())
	draft, err := view.BeginEdit(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, draft.Get("password"))
	assert.Equal(t, "jdoe", draft.Get("login_id"))

	_, err = view.SetField("cv", "x")
	require.Error(t, err)
	view.CancelEdit()
	_, err = view.SetField("student_name", "x")
	require.Error(t, err)
}
