package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/pkg/apiclient"
)

// InternshipRepository reads internship records. Internships are never
// mutated from the console.
type InternshipRepository struct {
	client APIClient
}

// NewInternshipRepository constructs an InternshipRepository.
func NewInternshipRepository(client APIClient) *InternshipRepository {
	return &InternshipRepository{client: client}
}

// ListAll returns every internship.
func (r *InternshipRepository) ListAll(ctx context.Context) ([]models.Internship, error) {
	resp, err := r.client.Do(ctx, http.MethodGet, "/api/internships/all", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Internship](resp.Body)
}

// ListWithoutInternship returns students with no internship record.
func (r *InternshipRepository) ListWithoutInternship(ctx context.Context) ([]models.StudentWithoutInternship, error) {
	resp, err := r.client.Do(ctx, http.MethodGet, "/api/internships/no-internship", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.StudentWithoutInternship](resp.Body)
}

// FetchFile downloads one attachment of an internship.
func (r *InternshipRepository) FetchFile(ctx context.Context, id int64, kind models.FileKind) (*apiclient.Blob, error) {
	return r.client.Fetch(ctx, fmt.Sprintf("/api/internships/%d/files/%s", id, kind))
}
