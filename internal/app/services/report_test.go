package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromero/aulasync/internal/app/models"
)

func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }

func testClass() *models.Class {
	return &models.Class{
		ID:           1,
		Name:         "Math",
		TeacherID:    10,
		StudentCount: 2,
		Teacher:      &models.User{ID: 10, FirstName: "Tom", LastName: "Owens"},
	}
}

func testRoster() []*models.ClassMember {
	return []*models.ClassMember{
		{ClassID: 1, StudentID: 20, Student: &models.User{ID: 20, FirstName: "Sara", LastName: "Lind"}},
		{ClassID: 1, StudentID: 21, Student: &models.User{ID: 21, FirstName: "Ben", LastName: "Kerr"}},
	}
}

func TestBuildClassReportZeroTasks(t *testing.T) {
	report := BuildClassReport(testClass(), testRoster(), nil, nil, time.Now())

	assert.Equal(t, "Math", report.ClassName)
	assert.Equal(t, "Tom Owens", report.TeacherName)
	assert.Equal(t, 2, report.StudentCount)
	assert.Empty(t, report.Tasks)
	assert.Empty(t, report.Summaries)
}

func TestBuildClassReportSingleGradedSubmission(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []*models.Post{
		{ID: 100, ClassID: 1, Kind: models.PostTask, Title: stringPtr("Homework 1"), DueDate: &due},
	}
	submissions := []*models.Submission{
		{
			ID:          500,
			PostID:      100,
			StudentID:   20,
			Comment:     "done",
			Score:       float64Ptr(8.5),
			Feedback:    stringPtr("Good"),
			SubmittedAt: time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC),
		},
	}

	report := BuildClassReport(testClass(), testRoster(), tasks, submissions, time.Now())

	require.Len(t, report.Tasks, 1)
	section := report.Tasks[0]
	assert.Equal(t, "Homework 1", section.Title)
	require.Len(t, section.Rows, 2)

	assert.Equal(t, models.SubmissionStatusDelivered, section.Rows[0].Status)
	require.NotNil(t, section.Rows[0].Score)
	assert.Equal(t, 8.5, *section.Rows[0].Score)
	assert.Equal(t, "Good", section.Rows[0].Feedback)

	assert.Equal(t, models.SubmissionStatusPending, section.Rows[1].Status)
	assert.Nil(t, section.Rows[1].Score)

	require.Len(t, report.Summaries, 2)
	sara := report.Summaries[0]
	assert.Equal(t, 1, sara.SubmissionCount)
	assert.Equal(t, 1, sara.GradedCount)
	require.NotNil(t, sara.Mean)
	assert.Equal(t, 8.5, *sara.Mean)
	assert.Equal(t, 8.5, *sara.Max)
	assert.Equal(t, 8.5, *sara.Min)

	ben := report.Summaries[1]
	assert.Equal(t, 0, ben.SubmissionCount)
	assert.Equal(t, 0, ben.GradedCount)
	assert.Nil(t, ben.Mean)
	assert.Nil(t, ben.Max)
	assert.Nil(t, ben.Min)
}

func TestBuildClassReportAggregatesGradedOnly(t *testing.T) {
	tasks := []*models.Post{
		{ID: 100, ClassID: 1, Kind: models.PostTask, Title: stringPtr("T1")},
		{ID: 101, ClassID: 1, Kind: models.PostTask, Title: stringPtr("T2")},
		{ID: 102, ClassID: 1, Kind: models.PostTask, Title: stringPtr("T3")},
	}
	submissions := []*models.Submission{
		{ID: 1, PostID: 100, StudentID: 20, Score: float64Ptr(6)},
		{ID: 2, PostID: 101, StudentID: 20, Score: float64Ptr(9)},
		// Submitted but ungraded, must not affect the aggregates
		{ID: 3, PostID: 102, StudentID: 20},
	}

	report := BuildClassReport(testClass(), testRoster(), tasks, submissions, time.Now())

	require.Len(t, report.Summaries, 2)
	sara := report.Summaries[0]
	assert.Equal(t, 3, sara.SubmissionCount)
	assert.Equal(t, 2, sara.GradedCount)
	require.NotNil(t, sara.Mean)
	assert.Equal(t, 7.5, *sara.Mean)
	assert.Equal(t, 9.0, *sara.Max)
	assert.Equal(t, 6.0, *sara.Min)
}

func TestWriteClassReportCSVZeroTasks(t *testing.T) {
	report := BuildClassReport(testClass(), testRoster(), nil, nil,
		time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, WriteClassReportCSV(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Class\tMath")
	assert.Contains(t, out, "Teacher\tTom Owens")
	assert.Contains(t, out, "Students\t2")
	// Only the class info block
	assert.NotContains(t, out, "Task")
	assert.NotContains(t, out, "Student\t")
}

func TestWriteClassReportCSVSections(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []*models.Post{
		{ID: 100, ClassID: 1, Kind: models.PostTask, Title: stringPtr("Homework 1"), DueDate: &due},
	}
	submissions := []*models.Submission{
		{ID: 500, PostID: 100, StudentID: 20, Score: float64Ptr(8.5), Feedback: stringPtr("Good"),
			SubmittedAt: time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)},
	}
	report := BuildClassReport(testClass(), testRoster(), tasks, submissions, time.Now())

	var buf bytes.Buffer
	require.NoError(t, WriteClassReportCSV(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Task\tHomework 1\tDue 2025-06-01")
	assert.Contains(t, out, "Sara Lind\tEntregada\t2025-05-30 10:00\t8.50\tGood")
	assert.Contains(t, out, "Ben Kerr\tPendiente")
	assert.Contains(t, out, "Sara Lind\t1\t1\t8.50\t8.50\t8.50")
	assert.Contains(t, out, "Ben Kerr\t0\t0\t\t\t")
}

func TestWriteTaskReportCSV(t *testing.T) {
	tasks := []*models.Post{
		{ID: 100, ClassID: 1, Kind: models.PostTask, Title: stringPtr("Homework 1")},
	}
	submissions := []*models.Submission{
		{ID: 500, PostID: 100, StudentID: 20, Score: float64Ptr(7),
			SubmittedAt: time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)},
	}
	report := BuildClassReport(testClass(), testRoster(), tasks, submissions, time.Now())
	require.Len(t, report.Tasks, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteTaskReportCSV(&buf, &report.Tasks[0]))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "StudentID\tName\tStatus\tDate\tScore\tFeedback", lines[0])
	assert.Equal(t, "20\tSara Lind\tEntregada\t2025-05-30 10:00\t7.00\t", lines[1])
	assert.Equal(t, "21\tBen Kerr\tPendiente\t\t\t", lines[2])
}
