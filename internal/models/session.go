package models

import (
	"strconv"
	"time"
)

// SessionState tracks where a calculation session sits in its lifecycle.
type SessionState string

const (
	// SessionStateIdle means no subject count has been chosen yet.
	SessionStateIdle SessionState = "idle"
	// SessionStateEditing means subjects exist and are being filled in.
	SessionStateEditing SessionState = "editing"
	// SessionStateResultReady means a valid calculation has been produced.
	SessionStateResultReady SessionState = "result_ready"
)

// Subject is one course entry within a calculation session.
type Subject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Marks       float64 `json:"marks"`
	CreditHours int     `json:"credit_hours"`
}

// Valid reports whether the entry can participate in a calculation.
func (s Subject) Valid() bool {
	return s.Name != "" && s.Marks >= 0 && s.Marks <= 100
}

// Result is the immutable outcome of one successful calculation.
type Result struct {
	GPA          float64   `json:"gpa"`
	Percentage   float64   `json:"percentage"`
	Grade        string    `json:"grade"`
	Remarks      string    `json:"remarks"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// Session owns the subject list and result for one calculator visit.
type Session struct {
	ID           string       `json:"id"`
	SubjectCount int          `json:"subject_count"`
	Subjects     []Subject    `json:"subjects"`
	State        SessionState `json:"state"`
	Result       *Result      `json:"result,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ResetSubjects discards every entry and allocates count fresh ones with
// sequential ids, empty names, zero marks and a single credit hour. Any prior
// result is dropped. A count of zero clears the list and parks the session.
func (s *Session) ResetSubjects(count int) {
	s.SubjectCount = count
	s.Result = nil

	if count <= 0 {
		s.SubjectCount = 0
		s.Subjects = nil
		s.State = SessionStateIdle
		return
	}

	subjects := make([]Subject, count)
	for i := range subjects {
		subjects[i] = Subject{
			ID:          strconv.Itoa(i + 1),
			CreditHours: 1,
		}
	}

	s.Subjects = subjects
	s.State = SessionStateEditing
}

// FindSubject returns a pointer to the entry with the given id, or nil.
func (s *Session) FindSubject(id string) *Subject {
	for i := range s.Subjects {
		if s.Subjects[i].ID == id {
			return &s.Subjects[i]
		}
	}
	return nil
}

// ValidSubjects returns the entries that pass the validity check, in order.
func (s *Session) ValidSubjects() []Subject {
	valid := make([]Subject, 0, len(s.Subjects))
	for _, subject := range s.Subjects {
		if subject.Valid() {
			valid = append(valid, subject)
		}
	}
	return valid
}
