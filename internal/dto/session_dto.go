package dto

import (
	"time"

	"github.com/noah-isme/gpa-go-api/internal/models"
)

// SessionCreateRequest starts a calculation session with a chosen subject count.
type SessionCreateRequest struct {
	SubjectCount int `json:"subject_count" validate:"gte=0,lte=50"`
}

// SubjectCountRequest resizes the subject list. The resize is destructive:
// nothing entered before survives it.
type SubjectCountRequest struct {
	SubjectCount int `json:"subject_count" validate:"gte=0,lte=50"`
}

// SubjectUpdateRequest mutates a single field of one subject entry. Nil
// fields are left untouched.
type SubjectUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Marks       *float64 `json:"marks,omitempty"`
	CreditHours *int     `json:"credit_hours,omitempty" validate:"omitempty,gte=1,lte=12"`
}

// SubjectResponse mirrors one subject entry.
type SubjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Marks       float64 `json:"marks"`
	CreditHours int     `json:"credit_hours"`
	Valid       bool    `json:"valid"`
}

// ResultResponse mirrors a computed result.
type ResultResponse struct {
	GPA          float64   `json:"gpa"`
	Percentage   float64   `json:"percentage"`
	Grade        string    `json:"grade"`
	Remarks      string    `json:"remarks"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// SessionResponse is the full session view returned by the API.
type SessionResponse struct {
	ID           string            `json:"id"`
	SubjectCount int               `json:"subject_count"`
	State        string            `json:"state"`
	Subjects     []SubjectResponse `json:"subjects"`
	Result       *ResultResponse   `json:"result,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// CelebrationEvent is pushed to presentation subscribers when a calculation
// clears the celebration threshold. Purely cosmetic; carries no state.
type CelebrationEvent struct {
	SessionID  string    `json:"session_id"`
	GPA        float64   `json:"gpa"`
	Grade      string    `json:"grade"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewSubjectResponse converts a subject model.
func NewSubjectResponse(subject models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:          subject.ID,
		Name:        subject.Name,
		Marks:       subject.Marks,
		CreditHours: subject.CreditHours,
		Valid:       subject.Valid(),
	}
}

// NewResultResponse converts a result model.
func NewResultResponse(result models.Result) ResultResponse {
	return ResultResponse{
		GPA:          result.GPA,
		Percentage:   result.Percentage,
		Grade:        result.Grade,
		Remarks:      result.Remarks,
		CalculatedAt: result.CalculatedAt,
	}
}

// NewSessionResponse converts a session model with its subjects and result.
func NewSessionResponse(session models.Session) SessionResponse {
	subjects := make([]SubjectResponse, 0, len(session.Subjects))
	for _, subject := range session.Subjects {
		subjects = append(subjects, NewSubjectResponse(subject))
	}

	response := SessionResponse{
		ID:           session.ID,
		SubjectCount: session.SubjectCount,
		State:        string(session.State),
		Subjects:     subjects,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}

	if session.Result != nil {
		result := NewResultResponse(*session.Result)
		response.Result = &result
	}

	return response
}
