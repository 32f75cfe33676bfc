package models

// Assignment types reported by the classroom API.
const (
	AssignmentTypeIndividual = "individual"
	AssignmentTypeGroup      = "group"
)

// Assignment is a unit of work inside a classroom.
type Assignment struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	Type               string     `json:"type"`
	Slug               string     `json:"slug"`
	InviteLink         string     `json:"invite_link"`
	InvitationsEnabled bool       `json:"invitations_enabled"`
	PublicRepo         bool       `json:"public_repo"`
	Language           string     `json:"language"`
	Deadline           *string    `json:"deadline,omitempty"`
	Accepted           int        `json:"accepted"`
	Submitted          int        `json:"submitted"`
	Passing            int        `json:"passing"`
	Classroom          *Classroom `json:"classroom,omitempty"`
}
