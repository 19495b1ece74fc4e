package models

// Batch is a cohort of students admitted in one year. DeptName is only set
// when the API joins it into the response.
type Batch struct {
	ID       int64  `json:"batch_id"`
	Name     string `json:"batch_name"`
	Year     Year   `json:"batch_year"`
	DeptID   *int64 `json:"dept_id"`
	DeptName string `json:"dept_name,omitempty"`
}

// Key implements Keyed.
func (b Batch) Key() int64 { return b.ID }

// Label renders "Name (Year)", the form used in every batch dropdown.
func (b Batch) Label() string {
	return b.Name + " (" + b.Year.String() + ")"
}
