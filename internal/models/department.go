package models

// Department is an academic department.
type Department struct {
	ID   int64  `json:"dept_id"`
	Name string `json:"dept_name"`
}

// Key implements Keyed.
func (d Department) Key() int64 { return d.ID }
