// Package grading implements the pure marks-to-GPA pipeline: per-subject
// grade points, the credit-hour-weighted mean, and the percentage, letter and
// remarks lookups. Everything here is deterministic and side-effect free; the
// threshold tables live in Policy.
package grading

import (
	"errors"

	"github.com/noah-isme/gpa-go-api/internal/models"
)

// ErrNoSubjects indicates CalculateGPA was invoked with an empty list.
var ErrNoSubjects = errors.New("no subjects to grade")

// ErrNoCreditHours indicates the credit hours sum to zero, which would make
// the weighted mean undefined.
var ErrNoCreditHours = errors.New("total credit hours must be positive")

// PointsFor converts marks on the 0-100 scale to grade points using the
// policy breakpoints, evaluated highest threshold first.
func (p Policy) PointsFor(marks float64) float64 {
	for _, band := range p.GradePoints {
		if marks >= band.Min {
			return band.Points
		}
	}
	return 0
}

// CalculateGPA computes the credit-hour-weighted mean of the subjects' grade
// points. The caller guarantees every subject is valid; the only failure
// modes are an empty list and a zero credit-hour total.
func CalculateGPA(subjects []models.Subject, policy Policy) (float64, error) {
	if len(subjects) == 0 {
		return 0, ErrNoSubjects
	}

	var weightedPoints, totalHours float64
	for _, subject := range subjects {
		hours := float64(subject.CreditHours)
		weightedPoints += policy.PointsFor(subject.Marks) * hours
		totalHours += hours
	}

	if totalHours <= 0 {
		return 0, ErrNoCreditHours
	}

	return weightedPoints / totalHours, nil
}

// GPAPercentage converts a GPA back to the 0-100 scale with the linear
// transform gpa/max*100. Out-of-range input is clamped so the letter and
// remarks lookups stay total.
func GPAPercentage(gpa float64, policy Policy) float64 {
	percentage := gpa / policy.MaxPoints * 100
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}

// LetterGrade maps a percentage to a letter from the policy table.
func LetterGrade(percentage float64, policy Policy) string {
	return lookup(policy.Letters, percentage)
}

// Remarks maps a percentage to a qualitative phrase from the policy table.
func Remarks(percentage float64, policy Policy) string {
	return lookup(policy.Remarks, percentage)
}

func lookup(table []Band, percentage float64) string {
	for _, band := range table {
		if percentage >= band.Min {
			return band.Label
		}
	}
	if len(table) == 0 {
		return ""
	}
	return table[len(table)-1].Label
}
