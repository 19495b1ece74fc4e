package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
)

func TestAdvisorRowsSearchAndBatchName(t *testing.T) {
	advisors := &fakeRepo[models.Advisor]{items: []models.Advisor{
		{ID: 1, LoginID: "adv-jo", Name: "Mary Major", BatchID: models.IDPtr(10)},
		{ID: 2, LoginID: "kim", Name: "Kim Park", BatchID: models.IDPtr(11), BatchName: "Embedded"},
		{ID: 3, LoginID: "lee", Name: "Lee Jones", BatchID: models.IDPtr(77)},
	}}
	batches := &fakeRepo[models.Batch]{items: []models.Batch{{ID: 10, Name: "Fall21", Year: "2021"}}}
	view := NewAdvisorView(advisors, batches, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	rows := view.Rows("")
	require.Len(t, rows, 3)
	assert.Equal(t, "Fall21", rows[0].Batch)
	assert.Equal(t, "Embedded", rows[1].Batch)
	assert.Equal(t, "Unknown", rows[2].Batch)

	rows = view.Rows("JO")
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, int64(3), rows[1].ID)
}

func TestAdvisorUpdateWithoutRecordRefetches(t *testing.T) {
	advisors := &fakeRepo[models.Advisor]{items: []models.Advisor{{ID: 1, LoginID: "a", Name: "A", BatchID: models.IDPtr(10)}}}
	batches := &fakeRepo[models.Batch]{items: []models.Batch{{ID: 10, Name: "Fall21"}}}
	view := NewAdvisorView(advisors, batches, adminSession(), nil)
	require.NoError(t, view.Load(context.Background()))

	advisors.updateOut = repository.Outcome[models.Advisor]{}
	advisors.items = []models.Advisor{{ID: 1, LoginID: "a", Name: "B", BatchID: nil}}
	res, err := view.Update(context.Background(), 1, map[string]string{"advisor_name": "B", "batch_id": ""})
	require.NoError(t, err)
	assert.True(t, res.Refetched)
	assert.Equal(t, "Advisor updated successfully!", res.Notice)
	assert.Nil(t, advisors.updatePayload["batch_id"])
	assert.Contains(t, advisors.updatePayload, "batch_id")
	assert.Equal(t, "B", view.Rows("")[0].Name)
	assert.Equal(t, 2, advisors.listCalls)
}
