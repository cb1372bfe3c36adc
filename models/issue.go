package models

// IssueCategory is an open enumeration; unknown categories are stored as-is.
type IssueCategory string

const (
	Road        IssueCategory = "Road"
	Garbage     IssueCategory = "Garbage"
	Water       IssueCategory = "Water"
	Electricity IssueCategory = "Electricity"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
)

// Valid reports whether s is one of the known lifecycle stages.
func (s IssueStatus) Valid() bool {
	switch s {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used for issue and timeline dates.
const DateLayout = "2006-01-02"

// TimelineEntry records one status transition of an issue
type TimelineEntry struct {
	Status      IssueStatus `bson:"status" json:"status"`
	Date        string      `bson:"date" json:"date"`
	Description string      `bson:"description" json:"description"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID          string          `bson:"id" json:"id"`
	Title       string          `bson:"title" json:"title"`
	Description string          `bson:"description" json:"description"`
	Category    IssueCategory   `bson:"category" json:"category"`
	Location    string          `bson:"location" json:"location"`
	Status      IssueStatus     `bson:"status" json:"status"`
	Date        string          `bson:"date" json:"date"`
	Image       string          `bson:"image,omitempty" json:"image,omitempty"`
	Timeline    []TimelineEntry `bson:"timeline" json:"timeline"`
}

// Clone returns a copy that shares no memory with i.
func (i Issue) Clone() Issue {
	c := i
	c.Timeline = make([]TimelineEntry, len(i.Timeline))
	copy(c.Timeline, i.Timeline)
	return c
}

// NewIssue carries the caller-supplied fields of a report. Status is accepted
// so that clients sending a full issue body bind cleanly, but it is ignored.
type NewIssue struct {
	Title       string        `json:"title" binding:"required,max=200"`
	Description string        `json:"description" binding:"required,max=1000"`
	Category    IssueCategory `json:"category" binding:"required"`
	Location    string        `json:"location" binding:"required,max=200"`
	Image       string        `json:"image,omitempty"`
	Status      IssueStatus   `json:"status,omitempty"`
}
