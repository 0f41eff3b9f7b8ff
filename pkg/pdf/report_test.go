package pdf

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gpa-go-api/internal/models"
)

func TestBuildProducesPDF(t *testing.T) {
	builder := NewReportBuilder(zerolog.New(io.Discard))

	result := models.Result{GPA: 3.85, Percentage: 96.25, Grade: "A", Remarks: "Outstanding"}
	subjects := []models.Subject{
		{ID: "1", Name: "Mathematics", Marks: 95, CreditHours: 3},
		{ID: "2", Name: "Physics", Marks: 88.5, CreditHours: 4},
	}

	document, err := builder.Build(result, subjects, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, document)
	require.Equal(t, "%PDF", string(document[:4]))
}

func TestBuildPaginatesLongSubjectLists(t *testing.T) {
	builder := NewReportBuilder(zerolog.New(io.Discard))

	subjects := make([]models.Subject, 60)
	for i := range subjects {
		subjects[i] = models.Subject{ID: "1", Name: "Subject", Marks: 70, CreditHours: 2}
	}

	document, err := builder.Build(models.Result{GPA: 3.0, Grade: "C", Remarks: "Very Good"}, subjects, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, document)
	// A 60-entry list cannot fit on one A4 page; the artifact must contain
	// more than one page object.
	require.Greater(t, countOccurrences(document, []byte("/Type /Page")), 1)
}

func TestBuildEmptySubjectList(t *testing.T) {
	builder := NewReportBuilder(zerolog.New(io.Discard))

	document, err := builder.Build(models.Result{GPA: 0, Grade: "F", Remarks: "Needs Improvement"}, nil, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, document)
}

func countOccurrences(data, pattern []byte) int {
	count := 0
	for i := 0; i+len(pattern) <= len(data); i++ {
		if string(data[i:i+len(pattern)]) == string(pattern) {
			count++
		}
	}
	return count
}
