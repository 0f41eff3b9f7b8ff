package models

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetSubjectsAllocatesSequentialIDs(t *testing.T) {
	var session Session
	session.ResetSubjects(12)

	require.Equal(t, 12, session.SubjectCount)
	require.Equal(t, SessionStateEditing, session.State)
	require.Len(t, session.Subjects, 12)

	for i, subject := range session.Subjects {
		require.Equal(t, strconv.Itoa(i+1), subject.ID)
		require.Empty(t, subject.Name)
		require.Zero(t, subject.Marks)
		require.Equal(t, 1, subject.CreditHours)
	}
}

func TestResetSubjectsDiscardsEverything(t *testing.T) {
	var session Session
	session.ResetSubjects(5)
	session.Subjects[0].Name = "Math"
	session.Subjects[4].Marks = 99
	session.Result = &Result{GPA: 4.0}

	session.ResetSubjects(3)

	require.Len(t, session.Subjects, 3)
	require.Nil(t, session.Result)
	for _, subject := range session.Subjects {
		require.Empty(t, subject.Name)
		require.Zero(t, subject.Marks)
	}
}

func TestResetSubjectsZeroClearsList(t *testing.T) {
	var session Session
	session.ResetSubjects(4)
	session.ResetSubjects(0)

	require.Zero(t, session.SubjectCount)
	require.Empty(t, session.Subjects)
	require.Equal(t, SessionStateIdle, session.State)
}

func TestSubjectValidity(t *testing.T) {
	require.True(t, Subject{Name: "Math", Marks: 0}.Valid())
	require.True(t, Subject{Name: "Math", Marks: 100}.Valid())
	require.False(t, Subject{Name: "", Marks: 50}.Valid())
	require.False(t, Subject{Name: "Math", Marks: -1}.Valid())
	require.False(t, Subject{Name: "Math", Marks: 100.5}.Valid())
}

func TestFindSubject(t *testing.T) {
	var session Session
	session.ResetSubjects(3)

	require.NotNil(t, session.FindSubject("2"))
	require.Nil(t, session.FindSubject("9"))

	session.FindSubject("2").Name = "Physics"
	require.Equal(t, "Physics", session.Subjects[1].Name)
}

func TestValidSubjectsPreservesOrder(t *testing.T) {
	var session Session
	session.ResetSubjects(3)
	session.Subjects[0].Name = "A"
	session.Subjects[2].Name = "C"

	valid := session.ValidSubjects()
	require.Len(t, valid, 2)
	require.Equal(t, "1", valid[0].ID)
	require.Equal(t, "3", valid[1].ID)
}
