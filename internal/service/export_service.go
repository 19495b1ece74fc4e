package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/pkg/export"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type departmentRows interface {
	Load(ctx context.Context) error
	Rows() []dto.DepartmentRow
}

type batchRows interface {
	Load(ctx context.Context) error
	Rows() []dto.BatchRow
}

type studentRows interface {
	Load(ctx context.Context) error
	Rows(q dto.StudentQuery) []dto.StudentRow
}

type advisorRows interface {
	Load(ctx context.Context) error
	Rows(search string) []dto.AdvisorRow
}

type internshipRows interface {
	Load(ctx context.Context) error
	Rows(batchID *int64) []dto.InternshipRow
}

// ExportViews are the list views that can be exported.
type ExportViews struct {
	Departments departmentRows
	Batches     batchRows
	Students    studentRows
	Advisors    advisorRows
	Internships internshipRows
}

// ExportRequest selects the view, format and filters of an export.
type ExportRequest struct {
	View    string
	Format  export.Format
	Search  string
	BatchID *int64
}

// ExportResult is a rendered document.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders list views as CSV or PDF.
type ExportService struct {
	views  ExportViews
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(views ExportViews, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{views: views, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Render reloads the view, applies the filters and renders the rows.
func (s *ExportService) Render(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	req.View = strings.ToLower(strings.TrimSpace(req.View))
	data, err := s.dataset(ctx, req)
	if err != nil {
		return nil, err
	}

	var out []byte
	switch req.Format {
	case export.FormatPDF:
		out, err = s.pdf.Render(data)
	default:
		req.Format = export.FormatCSV
		out, err = s.csv.Render(data)
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("view", req.View), zap.String("format", string(req.Format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("%s_%s.%s", req.View, s.now().Format("20060102_150405"), req.Format),
		ContentType: req.Format.ContentType(),
		Data:        out,
	}, nil
}

func (s *ExportService) dataset(ctx context.Context, req ExportRequest) (export.Dataset, error) {
	switch req.View {
	case "departments":
		if err := s.views.Departments.Load(ctx); err != nil {
			return export.Dataset{}, err
		}
		rows := s.views.Departments.Rows()
		data := export.Dataset{Title: "Departments", Columns: []export.Column{{Key: "id", Label: "ID"}, {Key: "name", Label: "Department"}}}
		for _, r := range rows {
			data.Rows = append(data.Rows, map[string]string{"id": formatKey(r.ID), "name": r.Name})
		}
		return data, nil
	case "batches":
		if err := s.views.Batches.Load(ctx); err != nil {
			return export.Dataset{}, err
		}
		data := export.Dataset{Title: "Batches", Columns: []export.Column{
			{Key: "name", Label: "Batch"}, {Key: "start", Label: "Start Year"}, {Key: "end", Label: "End Year"}, {Key: "dept", Label: "Department"},
		}}
		for _, r := range s.views.Batches.Rows() {
			data.Rows = append(data.Rows, map[string]string{"name": r.Name, "start": r.StartYear, "end": r.EndYear, "dept": r.Department})
		}
		return data, nil
	case "students":
		if err := s.views.Students.Load(ctx); err != nil {
			return export.Dataset{}, err
		}
		data := export.Dataset{Title: "Students", Columns: []export.Column{
			{Key: "login", Label: "Login ID"}, {Key: "name", Label: "Name"}, {Key: "reg", Label: "Registration Number"}, {Key: "batch", Label: "Batch"},
		}}
		for _, r := range s.views.Students.Rows(dto.StudentQuery{Search: req.Search, BatchID: req.BatchID}) {
			data.Rows = append(data.Rows, map[string]string{"login": r.LoginID, "name": r.Name, "reg": r.RegistrationNumber, "batch": r.Batch})
		}
		return data, nil
	case "advisors":
		if err := s.views.Advisors.Load(ctx); err != nil {
			return export.Dataset{}, err
		}
		data := export.Dataset{Title: "Course Advisors", Columns: []export.Column{
			{Key: "login", Label: "Login ID"}, {Key: "name", Label: "Name"}, {Key: "batch", Label: "Batch"},
		}}
		for _, r := range s.views.Advisors.Rows(req.Search) {
			data.Rows = append(data.Rows, map[string]string{"login": r.LoginID, "name": r.Name, "batch": r.Batch})
		}
		return data, nil
	case "internships":
		if err := s.views.Internships.Load(ctx); err != nil {
			return export.Dataset{}, err
		}
		data := export.Dataset{Title: "Internships", Columns: []export.Column{
			{Key: "student", Label: "Student"}, {Key: "batch", Label: "Batch"}, {Key: "org", Label: "Organization"},
			{Key: "type", Label: "Type"}, {Key: "year", Label: "Year of Completion"},
		}}
		for _, r := range s.views.Internships.Rows(req.BatchID) {
			data.Rows = append(data.Rows, map[string]string{"student": r.StudentName, "batch": r.Batch, "org": r.Organization, "type": r.Type, "year": r.CompletionYear})
		}
		return data, nil
	}
	return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export view %q", req.View))
}
