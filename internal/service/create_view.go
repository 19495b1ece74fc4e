package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/repository"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

type creator[T any] interface {
	Create(ctx context.Context, payload map[string]interface{}) (repository.Outcome[T], error)
}

type departmentCreator interface {
	creator[models.Department]
	departmentLister
}

type batchCreator interface {
	creator[models.Batch]
	batchLister
}

// CreateRepositories groups the create endpoints per kind.
type CreateRepositories struct {
	Departments departmentCreator
	Batches     batchCreator
	Students    creator[models.Student]
	Advisors    creator[models.Advisor]
}

// CreateView is the "Add New Record" page.
type CreateView struct {
	repos     CreateRepositories
	session   sessionState
	validator *validator.Validate
	logger    *zap.Logger

	departments *Collection[models.Department]
	batches     *Collection[models.Batch]

	mu        sync.Mutex
	onCreated []func(models.EntityKind)
}

// NewCreateView constructs a CreateView.
func NewCreateView(repos CreateRepositories, session sessionState, validate *validator.Validate, logger *zap.Logger) *CreateView {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateView{
		repos:       repos,
		session:     session,
		validator:   validate,
		logger:      logger.With(zap.String("view", "create")),
		departments: NewCollection[models.Department](),
		batches:     NewCollection[models.Batch](),
	}
}

// Load fetches the department and batch dropdowns. Failures leave the
// dropdown empty.
func (v *CreateView) Load(ctx context.Context) error {
	if err := requireSession(v.session); err != nil {
		return err
	}
	refetchQuietly(ctx, v.logger, "create", v.loadDepartments, v.loadBatches)
	return nil
}

func (v *CreateView) loadDepartments(ctx context.Context) error {
	ticket := v.departments.Begin()
	items, err := v.repos.Departments.List(ctx)
	if err != nil {
		v.departments.Fail(ticket)
		return err
	}
	v.departments.Commit(ticket, items)
	return nil
}

func (v *CreateView) loadBatches(ctx context.Context) error {
	return loadBatches(ctx, v.session, v.repos.Batches, v.batches)
}

// OnCreated registers a hook run after a record of any kind is created. List
// views use it to refetch on next use.
func (v *CreateView) OnCreated(fn func(models.EntityKind)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onCreated = append(v.onCreated, fn)
}

func (v *CreateView) created(kind models.EntityKind) {
	v.mu.Lock()
	hooks := append([]func(models.EntityKind){}, v.onCreated...)
	v.mu.Unlock()
	for _, hook := range hooks {
		hook(kind)
	}
}

// Options returns the form description and dropdown contents.
func (v *CreateView) Options() dto.EntityOptions {
	out := dto.EntityOptions{
		Kinds:       make([]string, 0, len(models.EntityKinds)),
		Schemas:     make([]models.EntitySchema, 0, len(models.EntityKinds)),
		Departments: make([]dto.Option, 0),
		Batches:     batchOptions(v.batches),
	}
	for _, kind := range models.EntityKinds {
		schema, _ := models.Schema(kind)
		out.Kinds = append(out.Kinds, schema.Label)
		out.Schemas = append(out.Schemas, schema)
	}
	for _, d := range v.departments.Items() {
		out.Departments = append(out.Departments, dto.Option{ID: d.ID, Label: d.Name})
	}
	return out
}

// Create validates and posts a new record of the given kind.
func (v *CreateView) Create(ctx context.Context, kind models.EntityKind, fields map[string]string) (*dto.MutationResult, error) {
	schema, ok := models.Schema(kind)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Please select an entity")
	}
	if err := requireSession(v.session); err != nil {
		return nil, err
	}
	for name := range fields {
		if _, known := schema.Field(name); !known {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown field "+name)
		}
	}
	payload, err := createPayload(v.validator, schema, models.NewDraft(kind, 0, fields, nil))
	if err != nil {
		return nil, err
	}

	result := &dto.MutationResult{Notice: schema.Label + " added successfully!"}
	failed := "Failed to add " + schema.Label
	switch kind {
	case models.EntityDepartment:
		out, err := v.repos.Departments.Create(ctx, payload)
		if err != nil {
			return nil, withFallback(err, failed)
		}
		if out.Record != nil {
			v.departments.Append(*out.Record)
			result.Record = *out.Record
		} else {
			refetchQuietly(ctx, v.logger, "create", v.loadDepartments)
			result.Refetched = true
		}
	case models.EntityBatch:
		out, err := v.repos.Batches.Create(ctx, payload)
		if err != nil {
			return nil, withFallback(err, failed)
		}
		if out.Record != nil {
			v.batches.Append(*out.Record)
			result.Record = *out.Record
		} else {
			refetchQuietly(ctx, v.logger, "create", v.loadBatches)
			result.Refetched = true
		}
	case models.EntityStudent:
		out, err := v.repos.Students.Create(ctx, payload)
		if err != nil {
			return nil, withFallback(err, failed)
		}
		if out.Record != nil {
			result.Record = *out.Record
		}
	case models.EntityCourseAdvisor:
		out, err := v.repos.Advisors.Create(ctx, payload)
		if err != nil {
			return nil, withFallback(err, failed)
		}
		if out.Record != nil {
			result.Record = *out.Record
		}
	}
	v.created(kind)
	return result, nil
}

// Reset drops the dropdown contents.
func (v *CreateView) Reset() {
	v.departments.Reset()
	v.batches.Reset()
}
