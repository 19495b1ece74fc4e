package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/pkg/apiclient"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

type token string

func (t token) Token() string { return string(t) }

func newClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Config{BaseURL: srv.URL}, token("tok"))
}

func TestBatchUpdateReadsEnvelope(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/batches/4", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(2025), body["batch_year"])
		_, _ = w.Write([]byte(`{"message":"Batch updated","batch":{"batch_id":4,"batch_name":"Fall25","batch_year":"2025","dept_id":3}}`))
	})
	repo := NewBatchRepository(client)

	out, err := repo.Update(context.Background(), 4, map[string]interface{}{"batch_year": 2025})
	require.NoError(t, err)
	require.NotNil(t, out.Record)
	assert.Equal(t, "Fall25", out.Record.Name)
	assert.Equal(t, int64(3), *out.Record.DeptID)
	assert.Equal(t, "Batch updated", out.Message)
	assert.JSONEq(t, `{"batch_id":4,"batch_name":"Fall25","batch_year":"2025","dept_id":3}`, string(out.Fields))
}

func TestUpdateWithoutRecord(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Advisor updated"}`))
	})
	out, err := NewAdvisorRepository(client).Update(context.Background(), 2, map[string]interface{}{})
	require.NoError(t, err)
	assert.Nil(t, out.Record)
	assert.Empty(t, out.Fields)
	assert.Equal(t, "Advisor updated", out.Message)
}

func TestBareRecordIsAccepted(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"student_id":7,"student_name":"Jane","login_id":"jane","batch_id":null,"cv":"cv/7.pdf"}`))
	})
	s, err := NewStudentRepository(client).Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Jane", s.Name)
	assert.Nil(t, s.BatchID)
	assert.True(t, s.CV.Present())
}

func TestListToleratesNonArray(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/departments":
			_, _ = w.Write([]byte(`{"rows":[]}`))
		default:
			_, _ = w.Write([]byte(`[{"dept_id":1,"dept_name":"CS"}]`))
		}
	})
	repo := NewDepartmentRepository(client)
	out, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestDeleteSurfacesServerError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Batch has students"}`))
	})
	_, err := NewBatchRepository(client).Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "Batch has students", appErrors.FromError(err).Message)
}

func TestInternshipEndpoints(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/internships/all":
			_, _ = w.Write([]byte(`[{"internship_id":1,"student_id":2,"batch_id":3,"survey1":"s.pdf"}]`))
		case "/api/internships/no-internship":
			_, _ = w.Write([]byte(`[{"student_id":5,"student_name":"Ann","batch_id":3}]`))
		case "/api/internships/1/files/survey1":
			w.Header().Set("Content-Disposition", `attachment; filename="survey.pdf"`)
			_, _ = w.Write([]byte("pdf"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	repo := NewInternshipRepository(client)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []models.FileKind{models.FileSurvey1}, all[0].Files())

	without, err := repo.ListWithoutInternship(context.Background())
	require.NoError(t, err)
	require.Len(t, without, 1)
	assert.Equal(t, "Ann", without[0].Name)

	blob, err := repo.FetchFile(context.Background(), 1, models.FileSurvey1)
	require.NoError(t, err)
	assert.Equal(t, "survey.pdf", blob.Filename)

	_, err = repo.FetchFile(context.Background(), 1, models.FileSurvey2)
	assert.True(t, errors.Is(err, appErrors.ErrFileUnavailable))
}

func TestAuthRepositoryLogin(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/admin/login":
			_, _ = w.Write([]byte(`{"token":"jwt","role":"admin"}`))
		case "/signup/admin":
			_, _ = w.Write([]byte(`{"message":"Admin registered successfully"}`))
		}
	})
	repo := NewAuthRepository(client)

	res, err := repo.Login(context.Background(), models.LoginRequest{LoginID: "root", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, "admin", res.Role)

	msg, err := repo.Signup(context.Background(), "root", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Admin registered successfully", msg)
}
