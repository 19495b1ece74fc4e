package models

import "fmt"

// FileKind names a downloadable attachment.
type FileKind string

const (
	FileCV        FileKind = "cv"
	FileEvidences FileKind = "evidences"
	FileSurvey1   FileKind = "survey1"
	FileSurvey2   FileKind = "survey2"
	FileSurvey3   FileKind = "survey3"
)

// InternshipFileKinds are the attachments of an internship record.
var InternshipFileKinds = []FileKind{FileEvidences, FileSurvey1, FileSurvey2, FileSurvey3}

// ParseFileKind validates a raw kind.
func ParseFileKind(raw string) (FileKind, error) {
	switch kind := FileKind(raw); kind {
	case FileCV, FileEvidences, FileSurvey1, FileSurvey2, FileSurvey3:
		return kind, nil
	}
	return "", fmt.Errorf("unknown file kind %q", raw)
}

// Disposition controls how a spooled object is served.
type Disposition string

const (
	DispositionInline     Disposition = "inline"
	DispositionAttachment Disposition = "attachment"
)
