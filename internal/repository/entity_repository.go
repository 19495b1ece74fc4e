package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/pkg/apiclient"
)

func newResource[T any](client APIClient, kind models.EntityKind) resource[T] {
	schema, ok := models.Schema(kind)
	if !ok {
		panic(fmt.Sprintf("no schema for entity kind %d", int(kind)))
	}
	return resource[T]{client: client, endpoint: schema.Endpoint, envelope: schema.Envelope, idField: schema.IDField}
}

// DepartmentRepository talks to /api/departments.
type DepartmentRepository struct {
	res resource[models.Department]
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(client APIClient) *DepartmentRepository {
	return &DepartmentRepository{res: newResource[models.Department](client, models.EntityDepartment)}
}

// List returns every department.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	return r.res.list(ctx, r.res.endpoint)
}

// Create posts a new department.
func (r *DepartmentRepository) Create(ctx context.Context, payload map[string]interface{}) (Outcome[models.Department], error) {
	return r.res.create(ctx, payload)
}

// Update replaces a department's fields.
func (r *DepartmentRepository) Update(ctx context.Context, id int64, payload map[string]interface{}) (Outcome[models.Department], error) {
	return r.res.update(ctx, id, payload)
}

// Delete removes a department and returns the server message.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) (string, error) {
	return r.res.remove(ctx, id)
}

// BatchRepository talks to /api/batches.
type BatchRepository struct {
	res resource[models.Batch]
}

// NewBatchRepository constructs a BatchRepository.
func NewBatchRepository(client APIClient) *BatchRepository {
	return &BatchRepository{res: newResource[models.Batch](client, models.EntityBatch)}
}

func (r *BatchRepository) List(ctx context.Context) ([]models.Batch, error) {
	return r.res.list(ctx, r.res.endpoint)
}

func (r *BatchRepository) Create(ctx context.Context, payload map[string]interface{}) (Outcome[models.Batch], error) {
	return r.res.create(ctx, payload)
}

func (r *BatchRepository) Update(ctx context.Context, id int64, payload map[string]interface{}) (Outcome[models.Batch], error) {
	return r.res.update(ctx, id, payload)
}

func (r *BatchRepository) Delete(ctx context.Context, id int64) (string, error) {
	return r.res.remove(ctx, id)
}

// StudentRepository talks to /api/students.
type StudentRepository struct {
	res resource[models.Student]
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(client APIClient) *StudentRepository {
	return &StudentRepository{res: newResource[models.Student](client, models.EntityStudent)}
}

func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	return r.res.list(ctx, r.res.endpoint)
}

// Get fetches a fresh copy of one student.
func (r *StudentRepository) Get(ctx context.Context, id int64) (*models.Student, error) {
	return r.res.get(ctx, id)
}

func (r *StudentRepository) Create(ctx context.Context, payload map[string]interface{}) (Outcome[models.Student], error) {
	return r.res.create(ctx, payload)
}

func (r *StudentRepository) Update(ctx context.Context, id int64, payload map[string]interface{}) (Outcome[models.Student], error) {
	return r.res.update(ctx, id, payload)
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) (string, error) {
	return r.res.remove(ctx, id)
}

// FetchCV downloads the student's CV. mode is "open" or "download".
func (r *StudentRepository) FetchCV(ctx context.Context, id int64, mode string) (*apiclient.Blob, error) {
	return r.res.client.Fetch(ctx, fmt.Sprintf("%s/cv/%s", r.res.itemPath(id), mode))
}

// AdvisorRepository talks to /api/course-advisors.
type AdvisorRepository struct {
	res resource[models.Advisor]
}

// NewAdvisorRepository constructs an AdvisorRepository.
func NewAdvisorRepository(client APIClient) *AdvisorRepository {
	return &AdvisorRepository{res: newResource[models.Advisor](client, models.EntityCourseAdvisor)}
}

func (r *AdvisorRepository) List(ctx context.Context) ([]models.Advisor, error) {
	return r.res.list(ctx, r.res.endpoint)
}

func (r *AdvisorRepository) Create(ctx context.Context, payload map[string]interface{}) (Outcome[models.Advisor], error) {
	return r.res.create(ctx, payload)
}

func (r *AdvisorRepository) Update(ctx context.Context, id int64, payload map[string]interface{}) (Outcome[models.Advisor], error) {
	return r.res.update(ctx, id, payload)
}

func (r *AdvisorRepository) Delete(ctx context.Context, id int64) (string, error) {
	return r.res.remove(ctx, id)
}
