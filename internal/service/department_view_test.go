package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

func TestDepartmentInlineEditPatchesRow(t *testing.T) {
	repo := &fakeRepo[models.Department]{items: []models.Department{{ID: 1, Name: "CS"}, {ID: 2, Name: "EE"}}}
	renamed := models.Department{ID: 2, Name: "Electrical"}
	repo.updateOut = repository.Outcome[models.Department]{Record: &renamed}
	view := NewDepartmentView(repo, adminSession(), nil)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx))

	draft, err := view.BeginEdit(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "EE", draft.Get("dept_name"))

	res, err := view.Update(ctx, 2, map[string]string{"dept_name": "Electrical"})
	require.NoError(t, err)
	assert.Equal(t, "Department updated successfully!", res.Notice)
	assert.False(t, res.Refetched)
	assert.Equal(t, map[string]interface{}{"dept_name": "Electrical"}, repo.updatePayload)
	assert.Equal(t, []dto.DepartmentRow{{ID: 1, Name: "CS"}, {ID: 2, Name: "Electrical"}}, view.Rows())
	assert.Equal(t, 1, repo.listCalls)

	_, open := view.Draft()
	assert.False(t, open)
}

func TestDepartmentDeleteRemovesOnlyTarget(t *testing.T) {
	repo := &fakeRepo[models.Department]{
		items:     []models.Department{{ID: 1, Name: "CS"}, {ID: 2, Name: "EE"}, {ID: 3, Name: "ME"}},
		deleteMsg: "Department removed",
	}
	view := NewDepartmentView(repo, adminSession(), nil)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx))

	res, err := view.Delete(ctx, 2, Approve)
	require.NoError(t, err)
	assert.Equal(t, "Department removed", res.Notice)
	assert.Equal(t, []dto.DepartmentRow{{ID: 1, Name: "CS"}, {ID: 3, Name: "ME"}}, view.Rows())
}

func TestDepartmentUnknownRowCannotBeEdited(t *testing.T) {
	view := NewDepartmentView(&fakeRepo[models.Department]{}, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	_, err := view.BeginEdit(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, "Department not found", appErrors.FromError(err).Message)
}
