package model

import "time"

// StatusCompleted marks a program whose season is over. Completed programs
// never get a calendar reminder.
const StatusCompleted = "Completed"

// Program is a single open-source contribution program as stored in the
// catalog data file (programs.json).
//
// The deadline/calendar logic only reads Name, Description, Timeline,
// Stipend, Difficulty and Status; the remaining fields are display data
// for the catalog page.
type Program struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`

	Description string `json:"description"`
	Status      string `json:"status"`
	Difficulty  string `json:"difficulty"`

	// Timeline is free-form prose such as "May - August", "October 1-31"
	// or "Year-round". It is the only input to deadline extraction.
	Timeline string `json:"timeline"`
	Stipend  string `json:"stipend"`

	Contributors  int `json:"contributors"`
	Issues        int `json:"issues"`
	Organizations int `json:"organizations"`

	Contributions []string `json:"contributions,omitempty"`
	IssuesList    []string `json:"issues_list,omitempty"`
}

// Completed reports whether the program's status is "Completed".
func (p Program) Completed() bool {
	return p.Status == StatusCompleted
}

// Deadline is a single projected deadline occurrence for a program.
type Deadline struct {
	Program Program

	// Date is midnight of the deadline day in the reference location.
	Date time.Time
}
