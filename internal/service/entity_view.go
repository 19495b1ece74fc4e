package service

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

type entityMutator[T Keyed] interface {
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, payload map[string]interface{}) (repository.Outcome[T], error)
	Delete(ctx context.Context, id int64) (string, error)
}

// viewMessages holds the user-facing text of one view.
type viewMessages struct {
	deletePrompt string
	deleted      string
	deleteFailed string
	updated      string
	updateFailed string
	listFailed   string
}

// entityView is the editable list shared by the department, batch, student
// and advisor views.
type entityView[T Keyed] struct {
	name     string
	schema   models.EntitySchema
	repo     entityMutator[T]
	items    *Collection[T]
	session  sessionState
	logger   *zap.Logger
	messages viewMessages

	// fields seeds a draft from a record.
	fields func(T) map[string]string
	// stale reports that a record references something the joined
	// collections lack, so patching alone would leave the view inconsistent.
	stale func(T) bool
	// reloadJoins refreshes the joined collections.
	reloadJoins func(context.Context) error
	// settle fixes up a merged record, e.g. dropping a joined name whose
	// foreign key the update changed.
	settle func(cached, merged T) T

	mu    sync.Mutex
	draft *models.Draft
}

func newEntityView[T Keyed](name string, kind models.EntityKind, repo entityMutator[T], session sessionState, logger *zap.Logger, msgs viewMessages) *entityView[T] {
	schema, _ := models.Schema(kind)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &entityView[T]{
		name:     name,
		schema:   schema,
		repo:     repo,
		items:    NewCollection[T](),
		session:  session,
		logger:   logger.With(zap.String("view", name)),
		messages: msgs,
		stale:    func(T) bool { return false },
		reloadJoins: func(context.Context) error {
			return nil
		},
		settle: func(_, merged T) T { return merged },
	}
}

// loadItems fetches the list. On failure the collection degrades to empty and
// the error is returned.
func (v *entityView[T]) loadItems(ctx context.Context) error {
	if err := requireSession(v.session); err != nil {
		return err
	}
	ticket := v.items.Begin()
	items, err := v.repo.List(ctx)
	if err != nil {
		v.logger.Warn("list fetch failed", zap.Error(err))
		v.items.Fail(ticket)
		return withFallback(err, v.messages.listFailed)
	}
	if !v.items.Commit(ticket, items) {
		v.logger.Debug("discarded superseded list response")
	}
	return nil
}

// BeginEdit opens a draft for the cached record with the given id. Password
// fields always start empty.
func (v *entityView[T]) BeginEdit(ctx context.Context, id int64) (models.Draft, error) {
	if err := requireSession(v.session); err != nil {
		return models.Draft{}, err
	}
	record, ok := v.items.Find(id)
	if !ok {
		return models.Draft{}, appErrors.Clone(appErrors.ErrNotFound, v.schema.Label+" not found")
	}
	return v.open(record), nil
}

func (v *entityView[T]) open(record T) models.Draft {
	fields := v.fields(record)
	for _, f := range v.schema.Fields {
		if f.Type == models.FieldPassword {
			fields[f.Name] = ""
		}
	}
	draft := models.NewDraft(v.schema.Kind, record.Key(), fields, fields)
	v.mu.Lock()
	v.draft = &draft
	v.mu.Unlock()
	return draft
}

// SetField changes one field of the open draft.
func (v *entityView[T]) SetField(field, value string) (models.Draft, error) {
	return v.SetFields(map[string]string{field: value})
}

// SetFields applies several field changes at once; unknown fields reject the
// whole batch.
func (v *entityView[T]) SetFields(values map[string]string) (models.Draft, error) {
	for name := range values {
		if _, ok := v.schema.Field(name); !ok {
			return models.Draft{}, appErrors.Clone(appErrors.ErrValidation, "unknown field "+name)
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return models.Draft{}, appErrors.Clone(appErrors.ErrNotFound, "no edit in progress")
	}
	next := *v.draft
	for name, value := range values {
		next = next.With(name, value)
	}
	v.draft = &next
	return next, nil
}

// Draft returns the open draft.
func (v *entityView[T]) Draft() (models.Draft, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.draft == nil {
		return models.Draft{}, false
	}
	return *v.draft, true
}

// CancelEdit discards the open draft.
func (v *entityView[T]) CancelEdit() {
	v.mu.Lock()
	v.draft = nil
	v.mu.Unlock()
}

// Submit sends the open draft. On success the fields the server echoed are
// patched into the cached row and the draft closes; when the server returns no record, or one
// referencing data the view does not hold, the list is re-fetched instead. On
// failure the draft stays open.
func (v *entityView[T]) Submit(ctx context.Context) (*dto.MutationResult, error) {
	if err := requireSession(v.session); err != nil {
		return nil, err
	}
	draft, ok := v.Draft()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no edit in progress")
	}

	out, err := v.repo.Update(ctx, draft.ID, updatePayload(v.schema, draft))
	if err != nil {
		return nil, withFallback(err, v.messages.updateFailed)
	}

	v.mu.Lock()
	if v.draft != nil && v.draft.ID == draft.ID {
		v.draft = nil
	}
	v.mu.Unlock()

	result := &dto.MutationResult{Notice: notice(out.Message, v.messages.updated)}
	if out.Record != nil && (*out.Record).Key() == draft.ID {
		merged := *out.Record
		v.items.Patch(draft.ID, func(cached T) T {
			merged = v.settle(cached, overlay(cached, out.Fields, *out.Record))
			return merged
		})
		if !v.stale(merged) {
			result.Record = merged
			return result, nil
		}
	}
	refetchQuietly(ctx, v.logger, v.name, v.reloadJoins, v.loadItems)
	result.Refetched = true
	if record, ok := v.items.Find(draft.ID); ok {
		result.Record = record
	}
	return result, nil
}

// Update opens, fills and submits a draft in one call.
func (v *entityView[T]) Update(ctx context.Context, id int64, values map[string]string) (*dto.MutationResult, error) {
	if _, err := v.BeginEdit(ctx, id); err != nil {
		return nil, err
	}
	if _, err := v.SetFields(values); err != nil {
		v.CancelEdit()
		return nil, err
	}
	return v.Submit(ctx)
}

// Delete removes a record after confirmation. A declined prompt sends nothing.
func (v *entityView[T]) Delete(ctx context.Context, id int64, confirm Confirmer) (*dto.MutationResult, error) {
	if err := requireSession(v.session); err != nil {
		return nil, err
	}
	if confirm == nil || !confirm.Confirm(v.messages.deletePrompt) {
		return nil, confirmationRequired(v.messages.deletePrompt)
	}
	message, err := v.repo.Delete(ctx, id)
	if err != nil {
		return nil, withFallback(err, v.messages.deleteFailed)
	}
	v.items.Remove(id)

	v.mu.Lock()
	if v.draft != nil && v.draft.ID == id {
		v.draft = nil
	}
	v.mu.Unlock()
	return &dto.MutationResult{Notice: notice(message, v.messages.deleted)}, nil
}

// Loaded reports whether the list has been fetched since the last reset.
func (v *entityView[T]) Loaded() bool {
	return v.items.Loaded()
}

// Invalidate marks the list for a fetch on next use, keeping the open draft.
func (v *entityView[T]) Invalidate() {
	v.items.Invalidate()
}

// overlay applies the echoed JSON object onto the cached record. Attributes
// the echo leaves out keep their cached values. Without an echo, or when
// either side fails to round-trip, echoed is returned unchanged.
func overlay[T any](cached T, echo json.RawMessage, echoed T) T {
	if len(echo) == 0 {
		return echoed
	}
	base, err := json.Marshal(cached)
	if err != nil {
		return echoed
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &fields); err != nil {
		return echoed
	}
	var changed map[string]json.RawMessage
	if err := json.Unmarshal(echo, &changed); err != nil {
		return echoed
	}
	for name, value := range changed {
		fields[name] = value
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return echoed
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return echoed
	}
	return out
}

// reset drops all local state.
func (v *entityView[T]) reset() {
	v.items.Reset()
	v.CancelEdit()
}
