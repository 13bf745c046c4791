package escrow

// ProjectState is the lifecycle position of the whole engagement.
type ProjectState string

const (
	ProjectInitiated ProjectState = "initiated"
	ProjectAccepted  ProjectState = "accepted"
	ProjectClosed    ProjectState = "closed"
)

// IsValid returns true if the state is one of the defined constants.
func (p ProjectState) IsValid() bool {
	switch p {
	case ProjectInitiated, ProjectAccepted, ProjectClosed:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p ProjectState) String() string {
	return string(p)
}
