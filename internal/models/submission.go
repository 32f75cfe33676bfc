package models

// AcceptedAssignment is a student's (or group's) accepted instance of an assignment.
type AcceptedAssignment struct {
	ID          int64      `json:"id"`
	Submitted   bool       `json:"submitted"`
	Passing     bool       `json:"passing"`
	CommitCount int        `json:"commit_count"`
	Grade       string     `json:"grade"`
	Students    []Student  `json:"students"`
	Repository  Repository `json:"repository"`
}

// Logins returns the student logins in the order the API listed them.
func (a AcceptedAssignment) Logins() []string {
	logins := make([]string, 0, len(a.Students))
	for _, s := range a.Students {
		logins = append(logins, s.Login)
	}
	return logins
}

// Student is a GitHub user attached to an accepted assignment.
type Student struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Repository is the repository generated for an accepted assignment.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	HTMLURL       string `json:"html_url"`
	NodeID        string `json:"node_id"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
}
