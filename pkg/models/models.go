// Package models defines data structures shared across the application.
package models

import (
	"fmt"
	"time"
)

// Status is the per-day activity classification assigned to an issue.
// It is a closed enumeration; the report formatter rejects any value
// outside this set.
type Status int

const (
	// StatusNone means the issue was matched but not classified.
	StatusNone Status = iota

	// StatusCodeReview means the user requested or performed a code review.
	StatusCodeReview

	// StatusCompleted means the user resolved the issue that day.
	StatusCompleted

	// StatusWorked means the issue was in progress under the user that day.
	StatusWorked

	// StatusInvestigated means the user commented on an in-progress issue
	// without review intent.
	StatusInvestigated
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusCodeReview:
		return "code-review"
	case StatusCompleted:
		return "completed"
	case StatusWorked:
		return "worked"
	case StatusInvestigated:
		return "investigated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Classification records one issue's activity on one calendar day.
// Within a single day at most one classification exists per issue key;
// the same key may recur on other days as an independent entry.
type Classification struct {
	// Key is the tracker-assigned issue identifier (e.g., "ABC-123").
	Key string

	// Summary is the issue's one-line description, whitespace-trimmed.
	Summary string

	// Status is the derived activity classification.
	Status Status

	// Comments holds the comment bodies that drove the classification.
	// Retained for future use; the report does not render them.
	Comments []string

	// Date is the calendar day this classification applies to.
	Date time.Time
}

// Issue is a tracker issue record as returned by the query layer.
type Issue struct {
	// Key is the tracker-assigned issue identifier.
	Key string

	// Summary is the issue's one-line description.
	Summary string

	// Comments is the issue's comment thread in creation order.
	// Populated only when the query requested the comment field.
	Comments []Comment
}

// Comment is a single issue comment.
type Comment struct {
	// Author is the tracker username of the comment's author.
	Author string

	// Body is the comment text.
	Body string

	// Created is the comment's creation timestamp.
	Created time.Time
}
