package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
)

type advisorRepository interface {
	entityMutator[models.Advisor]
}

// AdvisorView is the course advisor management page.
type AdvisorView struct {
	*entityView[models.Advisor]
	batchRepo batchLister
	batches   *Collection[models.Batch]
}

// NewAdvisorView constructs an AdvisorView.
func NewAdvisorView(repo advisorRepository, batches batchLister, session sessionState, logger *zap.Logger) *AdvisorView {
	v := &AdvisorView{
		entityView: newEntityView[models.Advisor]("advisors", models.EntityCourseAdvisor, repo, session, logger, viewMessages{
			deletePrompt: "Are you sure you want to delete this advisor?",
			deleted:      "Advisor deleted successfully!",
			deleteFailed: "Failed to delete advisor",
			updated:      "Advisor updated successfully!",
			updateFailed: "Failed to update advisor",
			listFailed:   "Failed to fetch advisors",
		}),
		batchRepo: batches,
		batches:   NewCollection[models.Batch](),
	}
	v.fields = func(a models.Advisor) map[string]string {
		return map[string]string{
			"login_id":     a.LoginID,
			"password":     "",
			"advisor_name": a.Name,
			"batch_id":     models.FormatID(a.BatchID),
		}
	}
	v.stale = func(a models.Advisor) bool {
		return a.BatchID != nil && a.BatchName == "" && !v.batches.Has(*a.BatchID)
	}
	v.settle = func(cached, merged models.Advisor) models.Advisor {
		if !models.SameID(cached.BatchID, merged.BatchID) && merged.BatchName == cached.BatchName {
			merged.BatchName = ""
		}
		return merged
	}
	v.reloadJoins = func(ctx context.Context) error {
		return loadBatches(ctx, v.session, v.batchRepo, v.batches)
	}
	return v
}

// Load fetches advisors and batches.
func (v *AdvisorView) Load(ctx context.Context) error {
	if err := v.loadItems(ctx); err != nil {
		return err
	}
	refetchQuietly(ctx, v.logger, v.name, v.reloadJoins)
	return nil
}

// Rows renders the advisors whose name or login id contains search.
func (v *AdvisorView) Rows(search string) []dto.AdvisorRow {
	items := v.items.Items()
	rows := make([]dto.AdvisorRow, 0, len(items))
	for _, a := range items {
		if !matchesSearch(search, a.Name, a.LoginID) {
			continue
		}
		rows = append(rows, dto.AdvisorRow{
			ID:      a.ID,
			LoginID: a.LoginID,
			Name:    a.Name,
			BatchID: a.BatchID,
			Batch:   v.batchName(a),
		})
	}
	return rows
}

func (v *AdvisorView) batchName(a models.Advisor) string {
	if a.BatchName != "" {
		return a.BatchName
	}
	if a.BatchID != nil {
		if b, ok := v.batches.Find(*a.BatchID); ok {
			return b.Name
		}
	}
	return "Unknown"
}

// Batches returns the batch dropdown of the edit form.
func (v *AdvisorView) Batches() []dto.Option {
	return batchOptions(v.batches)
}

// Reset drops the view state.
func (v *AdvisorView) Reset() {
	v.reset()
	v.batches.Reset()
}
