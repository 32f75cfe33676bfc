package dto

import (
	"strconv"
	"strings"

	"github.com/noah-isme/classroom-report/pkg/export"
)

// SubmissionReportRequest names the assignment whose submissions are listed.
type SubmissionReportRequest struct {
	ClassroomName  string `validate:"required"`
	AssignmentName string `validate:"required"`
}

// SubmissionRow is one accepted assignment, numbered by its position in the API listing.
type SubmissionRow struct {
	Index          int
	Users          []string
	Submitted      bool
	RepositoryName string
	FullName       string
	DefaultBranch  string
}

// SubmissionReport lists every accepted assignment of one assignment.
type SubmissionReport struct {
	ClassroomName  string
	AssignmentName string
	AssignmentID   int64
	Rows           []SubmissionRow
}

// Dataset renders the report columns; Users holds one login per line.
func (r SubmissionReport) Dataset() export.Dataset {
	data := export.Dataset{Headers: []string{"#", "Users", "Repository Name", "Default Branch"}}
	for _, row := range r.Rows {
		data.Rows = append(data.Rows, map[string]string{
			"#":               strconv.Itoa(row.Index),
			"Users":           strings.Join(row.Users, "\n"),
			"Repository Name": row.RepositoryName,
			"Default Branch":  row.DefaultBranch,
		})
	}
	return data
}

// AssignmentRow summarises an assignment in the classroom overview.
type AssignmentRow struct {
	Type  string
	Title string
}

// ClassroomOverview is one classroom with its assignments.
type ClassroomOverview struct {
	ID           int64
	Name         string
	Organization string
	Assignments  []AssignmentRow
}

// AssignmentDataset renders the Type/Title table of the classroom.
func (c ClassroomOverview) AssignmentDataset() export.Dataset {
	data := export.Dataset{Headers: []string{"Type", "Title"}}
	for _, a := range c.Assignments {
		data.Rows = append(data.Rows, map[string]string{"Type": a.Type, "Title": a.Title})
	}
	return data
}

// ClassroomsDataset renders the Name/Organization summary table.
func ClassroomsDataset(classrooms []ClassroomOverview) export.Dataset {
	data := export.Dataset{Headers: []string{"Name", "Organization"}}
	for _, c := range classrooms {
		data.Rows = append(data.Rows, map[string]string{"Name": c.Name, "Organization": c.Organization})
	}
	return data
}

// CommitCountRow is the commit total of one submission repository.
type CommitCountRow struct {
	Organization   string
	RepositoryName string
	DefaultBranch  string
	Commits        int
}
