package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gpa-go-api/internal/dto"
	"github.com/noah-isme/gpa-go-api/internal/grading"
	"github.com/noah-isme/gpa-go-api/internal/models"
	"github.com/noah-isme/gpa-go-api/internal/observability"
	"github.com/noah-isme/gpa-go-api/internal/repository"
)

// ErrEmptyInput indicates no subject passed validation.
var ErrEmptyInput = errors.New("please fill in all subject details with marks between 0-100")

// ErrIncompleteData indicates some but not all subjects passed validation.
var ErrIncompleteData = errors.New("please fill in all subjects before calculating")

// ErrNoResult indicates export was requested without a prior successful
// calculation. Callers treat it as a no-op, not a failure.
var ErrNoResult = errors.New("no result to export")

// ErrExportFailed indicates the PDF builder rejected the report.
var ErrExportFailed = errors.New("failed to generate the report document")

// ReportBuilder serialises a result plus its subject list into a PDF
// document. The builder is an external collaborator; the service only hands
// it a finished snapshot.
type ReportBuilder interface {
	Build(result models.Result, subjects []models.Subject, generatedAt time.Time) ([]byte, error)
}

// CalculationService drives the calculate/export/dismiss transitions of a
// session. Validation failures are recoverable and leave the form untouched.
type CalculationService interface {
	Calculate(ctx context.Context, sessionID string) (dto.SessionResponse, error)
	Export(ctx context.Context, sessionID string) ([]byte, string, error)
	Dismiss(ctx context.Context, sessionID string) (dto.SessionResponse, error)
}

type calculationService struct {
	repo         repository.SessionRepository
	policy       grading.Policy
	builder      ReportBuilder
	celebrations CelebrationService
	logger       zerolog.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

// NewCalculationService constructs the calculation service.
func NewCalculationService(repo repository.SessionRepository, policy grading.Policy, builder ReportBuilder, celebrations CelebrationService, logger zerolog.Logger) CalculationService {
	return &calculationService{
		repo:         repo,
		policy:       policy,
		builder:      builder,
		celebrations: celebrations,
		logger:       logger.With().Str("component", "calculation_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/gpa-go-api/internal/service/calculation"),
		now:          time.Now,
	}
}

func (s *calculationService) Calculate(ctx context.Context, sessionID string) (dto.SessionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calculation.calculate", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session_lookup_failed")
		return dto.SessionResponse{}, err
	}

	valid := session.ValidSubjects()
	switch {
	case len(valid) == 0:
		observability.Calculations().WithLabelValues("empty_input").Inc()
		span.SetStatus(codes.Error, "empty_input")
		return dto.SessionResponse{}, ErrEmptyInput
	case len(valid) != len(session.Subjects):
		observability.Calculations().WithLabelValues("incomplete_data").Inc()
		span.SetStatus(codes.Error, "incomplete_data")
		return dto.SessionResponse{}, ErrIncompleteData
	}

	gpa, err := grading.CalculateGPA(session.Subjects, s.policy)
	if err != nil {
		observability.Calculations().WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "calculation_failed")
		return dto.SessionResponse{}, fmt.Errorf("failed to calculate gpa: %w", err)
	}

	percentage := grading.GPAPercentage(gpa, s.policy)
	result := models.Result{
		GPA:          gpa,
		Percentage:   percentage,
		Grade:        grading.LetterGrade(percentage, s.policy),
		Remarks:      grading.Remarks(percentage, s.policy),
		CalculatedAt: s.now().UTC(),
	}

	session.Result = &result
	session.State = models.SessionStateResultReady

	if err := s.repo.Save(ctx, &session); err != nil {
		observability.Calculations().WithLabelValues("error").Inc()
		span.RecordError(err)
		return dto.SessionResponse{}, err
	}

	observability.Calculations().WithLabelValues("success").Inc()
	span.SetAttributes(
		attribute.Float64("calculation.gpa", result.GPA),
		attribute.String("calculation.grade", result.Grade),
	)

	s.logger.Info().
		Str("session_id", session.ID).
		Float64("gpa", result.GPA).
		Str("grade", result.Grade).
		Msg("calculation completed")

	if result.GPA >= s.policy.CelebrationThreshold && s.celebrations != nil {
		s.celebrations.Emit(ctx, dto.CelebrationEvent{
			SessionID:  session.ID,
			GPA:        result.GPA,
			Grade:      result.Grade,
			OccurredAt: result.CalculatedAt,
		})
	}

	return dto.NewSessionResponse(session), nil
}

func (s *calculationService) Export(ctx context.Context, sessionID string) ([]byte, string, error) {
	ctx, span := s.tracer.Start(ctx, "calculation.export", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, "", err
	}

	if session.Result == nil {
		observability.Exports().WithLabelValues("no_result").Inc()
		return nil, "", ErrNoResult
	}

	// Snapshot taken before anything mutates: the exported document always
	// reflects the result and subjects current at the moment of the request.
	result := *session.Result
	subjects := make([]models.Subject, len(session.Subjects))
	copy(subjects, session.Subjects)
	generatedAt := s.now().UTC()

	document, err := s.builder.Build(result, subjects, generatedAt)
	if err != nil {
		observability.Exports().WithLabelValues("failure").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "export_failed")
		s.logger.Error().Err(err).Str("session_id", session.ID).Msg("report generation failed")
		return nil, "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	session.Result = nil
	if session.SubjectCount > 0 {
		session.State = models.SessionStateEditing
	} else {
		session.State = models.SessionStateIdle
	}

	if err := s.repo.Save(ctx, &session); err != nil {
		span.RecordError(err)
		return nil, "", err
	}

	observability.Exports().WithLabelValues("success").Inc()

	filename := fmt.Sprintf("gpa-report-%s.pdf", generatedAt.Format("20060102-150405"))
	return document, filename, nil
}

func (s *calculationService) Dismiss(ctx context.Context, sessionID string) (dto.SessionResponse, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	session.Result = nil
	if session.SubjectCount > 0 {
		session.State = models.SessionStateEditing
	} else {
		session.State = models.SessionStateIdle
	}

	if err := s.repo.Save(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

func (s *calculationService) load(ctx context.Context, id string) (models.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}
