package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Year is a calendar year as the API returns it: a number, a numeric string,
// an empty string or null. The raw text is kept so display never fails.
type Year string

// UnmarshalJSON accepts any scalar.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	*y = Year(string(data))
	return nil
}

// MarshalJSON writes numeric years as numbers and anything else as a string.
func (y Year) MarshalJSON() ([]byte, error) {
	if y == "" {
		return []byte("null"), nil
	}
	if n, ok := y.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(y))
}

// Int returns the numeric year when the raw value is an integer.
func (y Year) Int() (int, bool) {
	s := strings.TrimSpace(string(y))
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

func (y Year) String() string {
	return string(y)
}

// FileMarker records whether an attachment was uploaded. The API sends a path,
// a filename or a flag; null, "", false and 0 all mean absent.
type FileMarker bool

// UnmarshalJSON accepts any JSON value.
func (f *FileMarker) UnmarshalJSON(data []byte) error {
	switch s := string(bytes.TrimSpace(data)); s {
	case "", "null", "false", `""`, "0":
		*f = false
	default:
		*f = true
	}
	return nil
}

// Present reports whether the file exists.
func (f FileMarker) Present() bool {
	return bool(f)
}

// IDPtr is shorthand for optional foreign keys.
func IDPtr(id int64) *int64 {
	return &id
}

// SameID compares optional ids; two nils are equal.
func SameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FormatID renders an optional id, empty when nil.
func FormatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
