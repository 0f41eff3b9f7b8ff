package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gpa-go-api/internal/dto"
	"github.com/noah-isme/gpa-go-api/internal/models"
	"github.com/noah-isme/gpa-go-api/internal/repository"
)

// ErrSessionNotFound indicates the calculation session does not exist or expired.
var ErrSessionNotFound = errors.New("session not found")

// ErrSubjectNotFound indicates the subject id is not part of the session.
var ErrSubjectNotFound = errors.New("subject not found")

// SessionService owns the subject form state: creating sessions, the
// destructive subject-count resize and per-field subject mutation.
type SessionService interface {
	Create(ctx context.Context, payload dto.SessionCreateRequest) (dto.SessionResponse, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
	SetSubjectCount(ctx context.Context, id string, payload dto.SubjectCountRequest) (dto.SessionResponse, error)
	UpdateSubject(ctx context.Context, id, subjectID string, payload dto.SubjectUpdateRequest) (dto.SessionResponse, error)
}

type sessionService struct {
	repo      repository.SessionRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSessionService constructs the session service.
func NewSessionService(repo repository.SessionRepository, validate *validator.Validate, logger zerolog.Logger) SessionService {
	return &sessionService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "session_service").Logger(),
		now:       time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, payload dto.SessionCreateRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	session := models.Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}
	session.ResetSubjects(payload.SubjectCount)

	if err := s.repo.Save(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Int("subject_count", session.SubjectCount).
		Msg("session created")

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (dto.SessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) SetSubjectCount(ctx context.Context, id string, payload dto.SubjectCountRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	session, err := s.load(ctx, id)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	session.ResetSubjects(payload.SubjectCount)

	if err := s.repo.Save(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) UpdateSubject(ctx context.Context, id, subjectID string, payload dto.SubjectUpdateRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	session, err := s.load(ctx, id)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	subject := session.FindSubject(subjectID)
	if subject == nil {
		return dto.SessionResponse{}, ErrSubjectNotFound
	}

	if payload.Name != nil {
		subject.Name = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Name))
	}
	if payload.Marks != nil {
		// Range violations are accepted on write; validity is judged at
		// calculation time.
		subject.Marks = *payload.Marks
	}
	if payload.CreditHours != nil {
		subject.CreditHours = *payload.CreditHours
	}

	if err := s.repo.Save(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) load(ctx context.Context, id string) (models.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}
