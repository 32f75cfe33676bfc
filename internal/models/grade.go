package models

// AssignmentGrade is one row of the assignment grades export.
type AssignmentGrade struct {
	AssignmentName      string `json:"assignment_name"`
	AssignmentURL       string `json:"assignment_url"`
	StarterCodeURL      string `json:"starter_code_url"`
	GithubUsername      string `json:"github_username"`
	RosterIdentifier    string `json:"roster_identifier"`
	StudentRepoName     string `json:"student_repository_name"`
	StudentRepoURL      string `json:"student_repository_url"`
	SubmissionTimestamp string `json:"submission_timestamp"`
	PointsAwarded       string `json:"points_awarded"`
	PointsAvailable     string `json:"points_available"`
	GroupName           string `json:"group_name,omitempty"`
}
