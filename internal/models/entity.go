package models

import (
	"fmt"
	"strings"
)

// EntityKind is the closed set of entities the console can create and edit.
// The zero value is invalid so an unselected kind can never reach the API.
type EntityKind int

const (
	EntityUnknown EntityKind = iota
	EntityStudent
	EntityCourseAdvisor
	EntityBatch
	EntityDepartment
)

// EntityKinds lists the valid kinds in form order.
var EntityKinds = []EntityKind{EntityStudent, EntityCourseAdvisor, EntityBatch, EntityDepartment}

// ParseEntityKind accepts a display label ("Course Advisor") or a slug
// ("course-advisor", "advisors").
func ParseEntityKind(raw string) (EntityKind, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "student", "students":
		return EntityStudent, true
	case "courseadvisor", "courseadvisors", "advisor", "advisors":
		return EntityCourseAdvisor, true
	case "batch", "batches":
		return EntityBatch, true
	case "department", "departments":
		return EntityDepartment, true
	}
	return EntityUnknown, false
}

// Valid reports whether k is one of EntityKinds.
func (k EntityKind) Valid() bool {
	_, ok := schemas[k]
	return ok
}

func (k EntityKind) String() string {
	if s, ok := schemas[k]; ok {
		return s.Label
	}
	return "Unknown"
}

// MarshalText renders the display label.
func (k EntityKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid entity kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText parses a label or slug; anything else yields EntityUnknown.
func (k *EntityKind) UnmarshalText(text []byte) error {
	*k, _ = ParseEntityKind(string(text))
	return nil
}

// FieldType drives form rendering and payload coercion.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldPassword FieldType = "password"
	// FieldNumber holds an integer value such as a year.
	FieldNumber FieldType = "number"
	// FieldRef holds the id of another entity.
	FieldRef FieldType = "ref"
)

// FieldSpec describes one form field. Rules are validator tags applied to the
// typed value (string for text fields, int64 for number and ref fields).
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Rules    string    `json:"rules,omitempty"`
	// Options names the entity whose records populate a ref dropdown.
	Options EntityKind `json:"-"`
}

// EntitySchema binds a kind to its endpoint and form.
type EntitySchema struct {
	Kind     EntityKind  `json:"kind"`
	Label    string      `json:"label"`
	Endpoint string      `json:"endpoint"`
	IDField  string      `json:"id_field"`
	Envelope string      `json:"-"`
	Fields   []FieldSpec `json:"fields"`
}

// Field looks up a field by name.
func (s EntitySchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

var schemas = map[EntityKind]EntitySchema{
	EntityStudent: {
		Kind:     EntityStudent,
		Label:    "Student",
		Endpoint: "/api/students",
		IDField:  "student_id",
		Envelope: "student",
		Fields: []FieldSpec{
			{Name: "login_id", Label: "Login ID", Type: FieldText, Required: true},
			{Name: "password", Label: "Password", Type: FieldPassword, Required: true},
			{Name: "student_name", Label: "Student Name", Type: FieldText, Required: true},
			{Name: "registration_number", Label: "Registration Number", Type: FieldText, Required: true},
			{Name: "batch_id", Label: "Batch", Type: FieldRef, Required: true, Rules: "gt=0", Options: EntityBatch},
		},
	},
	EntityCourseAdvisor: {
		Kind:     EntityCourseAdvisor,
		Label:    "Course Advisor",
		Endpoint: "/api/course-advisors",
		IDField:  "advisor_id",
		Envelope: "advisor",
		Fields: []FieldSpec{
			{Name: "login_id", Label: "Login ID", Type: FieldText, Required: true},
			{Name: "password", Label: "Password", Type: FieldPassword, Required: true},
			{Name: "advisor_name", Label: "Advisor Name", Type: FieldText, Required: true},
			{Name: "batch_id", Label: "Batch", Type: FieldRef, Required: true, Rules: "gt=0", Options: EntityBatch},
		},
	},
	EntityBatch: {
		Kind:     EntityBatch,
		Label:    "Batch",
		Endpoint: "/api/batches",
		IDField:  "batch_id",
		Envelope: "batch",
		Fields: []FieldSpec{
			{Name: "batch_name", Label: "Batch Name", Type: FieldText, Required: true},
			{Name: "batch_year", Label: "Batch Year", Type: FieldNumber, Required: true, Rules: "min=2000,max=2100"},
			{Name: "dept_id", Label: "Department", Type: FieldRef, Required: true, Rules: "gt=0", Options: EntityDepartment},
		},
	},
	EntityDepartment: {
		Kind:     EntityDepartment,
		Label:    "Department",
		Endpoint: "/api/departments",
		IDField:  "dept_id",
		Envelope: "department",
		Fields: []FieldSpec{
			{Name: "dept_name", Label: "Department Name", Type: FieldText, Required: true},
		},
	},
}

// Schema returns the registry entry for k.
func Schema(k EntityKind) (EntitySchema, bool) {
	s, ok := schemas[k]
	return s, ok
}

// Draft is an in-progress record. Drafts are values: With returns a copy and
// leaves the receiver untouched.
type Draft struct {
	Kind     EntityKind        `json:"kind"`
	ID       int64             `json:"id,omitempty"`
	Fields   map[string]string `json:"fields"`
	original map[string]string
}

// NewDraft seeds a draft; original holds the persisted values an update is
// compared against and may be nil for a create.
func NewDraft(kind EntityKind, id int64, fields, original map[string]string) Draft {
	return Draft{Kind: kind, ID: id, Fields: copyFields(fields), original: copyFields(original)}
}

// With returns a copy of the draft with one field replaced.
func (d Draft) With(field, value string) Draft {
	next := d
	next.Fields = copyFields(d.Fields)
	next.Fields[field] = value
	return next
}

// Get returns the current value of field.
func (d Draft) Get(field string) string {
	return d.Fields[field]
}

// Original returns the persisted value of field before editing began.
func (d Draft) Original(field string) (string, bool) {
	v, ok := d.original[field]
	return v, ok
}

// IsUpdate reports whether the draft edits an existing record.
func (d Draft) IsUpdate() bool {
	return d.ID != 0
}

func copyFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
