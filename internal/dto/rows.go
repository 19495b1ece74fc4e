package dto

import "github.com/noah-isme/internship-admin/internal/models"

// Display rows carry the joined fields a list renders. Lookups that fail fall
// back to "Unknown" or the raw id and never error.

// DepartmentRow is one line of the department table.
type DepartmentRow struct {
	ID   int64  `json:"dept_id"`
	Name string `json:"dept_name"`
}

// BatchRow is one line of the batch table. EndYear is StartYear+4; both are
// empty when the stored year is not numeric.
type BatchRow struct {
	ID         int64  `json:"batch_id"`
	Name       string `json:"batch_name"`
	StartYear  string `json:"start_year"`
	EndYear    string `json:"end_year"`
	DeptID     *int64 `json:"dept_id"`
	Department string `json:"department"`
}

// StudentRow is one line of the student table.
type StudentRow struct {
	ID                 int64  `json:"student_id"`
	LoginID            string `json:"login_id"`
	Name               string `json:"student_name"`
	RegistrationNumber string `json:"registration_number"`
	BatchID            *int64 `json:"batch_id"`
	Batch              string `json:"batch"`
	HasCV              bool   `json:"has_cv"`
}

// AdvisorRow is one line of the course advisor table.
type AdvisorRow struct {
	ID      int64  `json:"advisor_id"`
	LoginID string `json:"login_id"`
	Name    string `json:"advisor_name"`
	BatchID *int64 `json:"batch_id"`
	Batch   string `json:"batch"`
}

// InternshipRow is one line of the internship table.
type InternshipRow struct {
	ID             int64             `json:"internship_id"`
	StudentID      int64             `json:"student_id"`
	StudentName    string            `json:"student_name"`
	BatchID        *int64            `json:"batch_id"`
	Batch          string            `json:"batch"`
	Organization   string            `json:"organization"`
	Type           string            `json:"internship_type"`
	CompletionYear string            `json:"year_of_completion"`
	Files          []models.FileKind `json:"files"`
}

// BatchGroup lists the students of one batch who have no internship yet.
type BatchGroup struct {
	BatchID  int64                             `json:"batch_id"`
	Batch    string                            `json:"batch"`
	Count    int                               `json:"count"`
	Expanded bool                              `json:"expanded"`
	Students []models.StudentWithoutInternship `json:"students,omitempty"`
}

// Option is a dropdown entry.
type Option struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// EntityOptions feeds the create form's dropdowns.
type EntityOptions struct {
	Kinds       []string              `json:"kinds"`
	Schemas     []models.EntitySchema `json:"schemas"`
	Departments []Option              `json:"departments"`
	Batches     []Option              `json:"batches"`
}
