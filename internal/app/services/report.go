package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dromero/aulasync/internal/app/models"
)

// ClassReport is the in-memory form of a class grade report. Building it is
// pure so the aggregation logic can be tested without a database.
type ClassReport struct {
	ClassName    string
	TeacherName  string
	StudentCount int
	GeneratedAt  time.Time
	Tasks        []TaskSection
	Summaries    []StudentSummary
}

// TaskSection lists every enrolled student's submission state for one task
type TaskSection struct {
	TaskID  int64
	Title   string
	DueDate *time.Time
	Rows    []TaskRow
}

// TaskRow is one student's line within a task section
type TaskRow struct {
	StudentID   int64
	StudentName string
	Status      string
	SubmittedAt *time.Time
	Score       *float64
	Feedback    string
}

// StudentSummary aggregates a student's results across all tasks.
// Mean/Max/Min are computed over graded submissions only and stay nil when
// the student has none.
type StudentSummary struct {
	StudentID       int64
	StudentName     string
	SubmissionCount int
	GradedCount     int
	Mean            *float64
	Max             *float64
	Min             *float64
}

// BuildClassReport assembles the report from a class, its roster, its tasks
// and every submission in the class. A class with zero tasks yields a report
// with only the class info populated.
func BuildClassReport(class *models.Class, roster []*models.ClassMember, tasks []*models.Post, submissions []*models.Submission, now time.Time) *ClassReport {
	report := &ClassReport{
		ClassName:    class.Name,
		StudentCount: class.StudentCount,
		GeneratedAt:  now,
	}
	if class.Teacher != nil {
		report.TeacherName = class.Teacher.FullName()
	}

	if len(tasks) == 0 {
		return report
	}

	// Index submissions by (task, student)
	byTaskStudent := make(map[int64]map[int64]*models.Submission)
	for _, submission := range submissions {
		if byTaskStudent[submission.PostID] == nil {
			byTaskStudent[submission.PostID] = make(map[int64]*models.Submission)
		}
		byTaskStudent[submission.PostID][submission.StudentID] = submission
	}

	summaries := make(map[int64]*StudentSummary, len(roster))

	for _, task := range tasks {
		section := TaskSection{
			TaskID:  task.ID,
			Title:   taskTitle(task),
			DueDate: task.DueDate,
		}

		for _, member := range roster {
			row := TaskRow{
				StudentID: member.StudentID,
				Status:    models.SubmissionStatusPending,
			}
			if member.Student != nil {
				row.StudentName = member.Student.FullName()
			}

			summary := summaries[member.StudentID]
			if summary == nil {
				summary = &StudentSummary{
					StudentID:   member.StudentID,
					StudentName: row.StudentName,
				}
				summaries[member.StudentID] = summary
			}

			if submission, ok := byTaskStudent[task.ID][member.StudentID]; ok {
				row.Status = models.SubmissionStatusDelivered
				submittedAt := submission.SubmittedAt
				row.SubmittedAt = &submittedAt
				row.Score = submission.Score
				if submission.Feedback != nil {
					row.Feedback = *submission.Feedback
				}

				summary.SubmissionCount++
				if submission.IsGraded() {
					score := *submission.Score
					summary.GradedCount++
					if summary.Max == nil || score > *summary.Max {
						summary.Max = &score
					}
					if summary.Min == nil || score < *summary.Min {
						summary.Min = &score
					}
				}
			}

			section.Rows = append(section.Rows, row)
		}

		report.Tasks = append(report.Tasks, section)
	}

	// Mean over graded submissions only; guarded so an ungraded student
	// never divides by zero
	for _, member := range roster {
		summary := summaries[member.StudentID]
		if summary.GradedCount > 0 {
			var sum float64
			for _, task := range tasks {
				if submission, ok := byTaskStudent[task.ID][member.StudentID]; ok && submission.IsGraded() {
					sum += *submission.Score
				}
			}
			mean := sum / float64(summary.GradedCount)
			summary.Mean = &mean
		}
		report.Summaries = append(report.Summaries, *summary)
	}

	return report
}

// WriteClassReportCSV renders the sectioned, tab-delimited class report
func WriteClassReportCSV(w io.Writer, report *ClassReport) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	// Class info block
	records := [][]string{
		{"Class", report.ClassName},
		{"Teacher", report.TeacherName},
		{"Students", strconv.Itoa(report.StudentCount)},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04")},
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write class info: %w", err)
		}
	}

	// Per-task blocks
	for _, task := range report.Tasks {
		if err := cw.Write([]string{}); err != nil {
			return err
		}
		header := []string{"Task", task.Title}
		if task.DueDate != nil {
			header = append(header, "Due "+task.DueDate.Format("2006-01-02"))
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		if err := cw.Write([]string{"Student", "Status", "Submitted", "Score", "Feedback"}); err != nil {
			return err
		}
		for _, row := range task.Rows {
			record := []string{
				row.StudentName,
				row.Status,
				formatTime(row.SubmittedAt),
				formatScore(row.Score),
				row.Feedback,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write task row: %w", err)
			}
		}
	}

	// Per-student summary block
	if len(report.Summaries) > 0 {
		if err := cw.Write([]string{}); err != nil {
			return err
		}
		if err := cw.Write([]string{"Student", "Submissions", "Graded", "Mean", "Max", "Min"}); err != nil {
			return err
		}
		for _, summary := range report.Summaries {
			record := []string{
				summary.StudentName,
				strconv.Itoa(summary.SubmissionCount),
				strconv.Itoa(summary.GradedCount),
				formatScore(summary.Mean),
				formatScore(summary.Max),
				formatScore(summary.Min),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write summary row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTaskReportCSV renders the flat single-task export: one row per
// enrolled student
func WriteTaskReportCSV(w io.Writer, section *TaskSection) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write([]string{"StudentID", "Name", "Status", "Date", "Score", "Feedback"}); err != nil {
		return err
	}
	for _, row := range section.Rows {
		record := []string{
			strconv.FormatInt(row.StudentID, 10),
			row.StudentName,
			row.Status,
			formatTime(row.SubmittedAt),
			formatScore(row.Score),
			row.Feedback,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write task row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func taskTitle(task *models.Post) string {
	if task.Title != nil {
		return *task.Title
	}
	return task.Body
}

func formatScore(score *float64) string {
	if score == nil {
		return ""
	}
	return strconv.FormatFloat(*score, 'f', 2, 64)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
