package models

// Classroom is a GitHub Classroom grouping of students and assignments.
// List responses omit Organization; the detail endpoint fills it.
type Classroom struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Archived     bool          `json:"archived"`
	URL          string        `json:"url"`
	Organization *Organization `json:"organization,omitempty"`
}

// OrganizationLogin returns the owning organization's login, or "" when unknown.
func (c Classroom) OrganizationLogin() string {
	if c.Organization == nil {
		return ""
	}
	return c.Organization.Login
}

// Organization is the GitHub organization backing a classroom.
type Organization struct {
	ID      int64  `json:"id"`
	Login   string `json:"login"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}
