package models

// Advisor is a course advisor account assigned to a batch.
type Advisor struct {
	ID        int64  `json:"advisor_id"`
	LoginID   string `json:"login_id"`
	Name      string `json:"advisor_name"`
	BatchID   *int64 `json:"batch_id"`
	BatchName string `json:"batch_name,omitempty"`
}

// Key implements Keyed.
func (a Advisor) Key() int64 { return a.ID }
