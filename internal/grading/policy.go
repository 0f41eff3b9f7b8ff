package grading

import "fmt"

// Band maps a minimum threshold to an outcome. Tables are evaluated top-down,
// so boundary values resolve to the better outcome.
type Band struct {
	Min    float64 `json:"min" mapstructure:"min"`
	Points float64 `json:"points" mapstructure:"points"`
	Label  string  `json:"label" mapstructure:"label"`
}

// Policy holds the institution-specific grading tables. The cut points are
// policy, not algorithm; swap the tables to change the grading scheme without
// touching the computation.
type Policy struct {
	// GradePoints maps marks (0-100) to grade points (0.0-4.0).
	GradePoints []Band `json:"grade_points" mapstructure:"grade_points"`
	// Letters maps percentage (0-100) to a letter grade.
	Letters []Band `json:"letters" mapstructure:"letters"`
	// Remarks maps percentage (0-100) to a qualitative phrase. Independent
	// of the letter table.
	Remarks []Band `json:"remarks" mapstructure:"remarks"`
	// MaxPoints is the top of the grade point scale, used for the linear
	// percentage conversion.
	MaxPoints float64 `json:"max_points" mapstructure:"max_points"`
	// CelebrationThreshold is the minimum GPA that triggers the celebratory
	// side effect after a successful calculation.
	CelebrationThreshold float64 `json:"celebration_threshold" mapstructure:"celebration_threshold"`
}

// DefaultPolicy returns the grading tables used when no override is configured.
func DefaultPolicy() Policy {
	return Policy{
		GradePoints: []Band{
			{Min: 85, Points: 4.0},
			{Min: 80, Points: 3.7},
			{Min: 75, Points: 3.3},
			{Min: 70, Points: 3.0},
			{Min: 65, Points: 2.7},
			{Min: 61, Points: 2.3},
			{Min: 58, Points: 2.0},
			{Min: 55, Points: 1.7},
			{Min: 50, Points: 1.0},
			{Min: 0, Points: 0.0},
		},
		Letters: []Band{
			{Min: 90, Label: "A"},
			{Min: 80, Label: "B"},
			{Min: 70, Label: "C"},
			{Min: 50, Label: "D"},
			{Min: 0, Label: "F"},
		},
		Remarks: []Band{
			{Min: 90, Label: "Outstanding"},
			{Min: 80, Label: "Excellent"},
			{Min: 70, Label: "Very Good"},
			{Min: 60, Label: "Good"},
			{Min: 50, Label: "Satisfactory"},
			{Min: 0, Label: "Needs Improvement"},
		},
		MaxPoints:            4.0,
		CelebrationThreshold: 3.0,
	}
}

// Validate checks the tables are non-empty and strictly descending so the
// top-down evaluation is well defined.
func (p Policy) Validate() error {
	if p.MaxPoints <= 0 {
		return fmt.Errorf("max points must be positive")
	}

	for name, table := range map[string][]Band{
		"grade_points": p.GradePoints,
		"letters":      p.Letters,
		"remarks":      p.Remarks,
	} {
		if len(table) == 0 {
			return fmt.Errorf("%s table must not be empty", name)
		}
		for i := 1; i < len(table); i++ {
			if table[i].Min >= table[i-1].Min {
				return fmt.Errorf("%s table must be strictly descending at entry %d", name, i)
			}
		}
		if table[len(table)-1].Min > 0 {
			return fmt.Errorf("%s table must cover the bottom of the scale", name)
		}
	}

	return nil
}
