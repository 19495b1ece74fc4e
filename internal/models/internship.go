package models

// Internship is a read-only internship record with its attachments.
type Internship struct {
	ID             int64      `json:"internship_id"`
	StudentID      int64      `json:"student_id"`
	StudentName    string     `json:"student_name"`
	BatchID        *int64     `json:"batch_id"`
	Organization   string     `json:"organization"`
	Type           string     `json:"internship_type"`
	CompletionYear Year       `json:"year_of_completion"`
	Evidences      FileMarker `json:"evidences"`
	Survey1        FileMarker `json:"survey1"`
	Survey2        FileMarker `json:"survey2"`
	Survey3        FileMarker `json:"survey3"`
}

// Key implements Keyed.
func (i Internship) Key() int64 { return i.ID }

// Files lists the attachments present, in display order.
func (i Internship) Files() []FileKind {
	present := map[FileKind]FileMarker{
		FileEvidences: i.Evidences,
		FileSurvey1:   i.Survey1,
		FileSurvey2:   i.Survey2,
		FileSurvey3:   i.Survey3,
	}
	out := make([]FileKind, 0, len(InternshipFileKinds))
	for _, kind := range InternshipFileKinds {
		if present[kind].Present() {
			out = append(out, kind)
		}
	}
	return out
}
