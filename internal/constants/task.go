package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed out of s.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityNormal TaskPriority = "Normal"
	PriorityUrgent TaskPriority = "Urgent"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Rank orders priorities from least to most urgent. Unknown values rank lowest.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}
