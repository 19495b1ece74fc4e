package models

// Student is a student account. The password is write-only and never decoded.
type Student struct {
	ID                 int64      `json:"student_id"`
	LoginID            string     `json:"login_id"`
	Name               string     `json:"student_name"`
	RegistrationNumber string     `json:"registration_number"`
	BatchID            *int64     `json:"batch_id"`
	CV                 FileMarker `json:"cv,omitempty"`
}

// Key implements Keyed.
func (s Student) Key() int64 { return s.ID }

// StudentWithoutInternship is a student with no internship record yet.
type StudentWithoutInternship struct {
	ID                 int64  `json:"student_id"`
	Name               string `json:"student_name"`
	RegistrationNumber string `json:"registration_number"`
	BatchID            *int64 `json:"batch_id"`
}

// Key implements Keyed.
func (s StudentWithoutInternship) Key() int64 { return s.ID }
