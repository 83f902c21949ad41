// Package classify derives per-day activity classifications for the
// current user from tracker queries.
package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/intapp/jiratime/internal/logging"
	"github.com/intapp/jiratime/pkg/models"
)

// Searcher executes a JQL query and returns every matching issue with
// the requested fields populated.
type Searcher interface {
	SearchAll(jql string, fields []string) ([]models.Issue, error)
}

// The three per-day query templates, parameterized by the yyyy/MM/dd
// formatted day. The syntax is Jira's and must stay verbatim.
const (
	jqlResolvedByUser   = `assignee was currentUser() on "%s" AND status was in (Resolved) on "%s" by currentUser()`
	jqlInProgressByUser = `assignee was currentUser() on "%s" AND status was in ("In Progress") on "%s" by currentUser()`
	jqlInProgressAnyone = `assignee was currentUser() on "%s" AND status was in ("In Progress") on "%s"`
)

// jqlDateLayout renders a day the way Jira's "was ... on" clause expects.
const jqlDateLayout = "2006/01/02"

// reviewMarker is the substring that marks a comment as a review request
// ("please look at", "take a look", ...). Matched case-insensitively.
const reviewMarker = "look "

var (
	fieldsSummary        = []string{"summary"}
	fieldsSummaryComment = []string{"summary", "comment"}
)

// dayBuffer accumulates one day's classifications with first-write-wins
// semantics per issue key, preserving insertion order.
type dayBuffer struct {
	seen  map[string]struct{}
	items []models.Classification
}

func newDayBuffer() *dayBuffer {
	return &dayBuffer{seen: make(map[string]struct{})}
}

// add inserts the classification unless its key was already added. Later
// phases never overwrite an earlier phase's entry.
func (b *dayBuffer) add(c models.Classification) {
	if _, ok := b.seen[c.Key]; ok {
		return
	}
	b.seen[c.Key] = struct{}{}
	b.items = append(b.items, c)
}

// ClassifyDay classifies the user's activity on a single day. Three
// queries run in order: issues the user resolved, issues in progress
// under the user, and in-progress issues the user commented on. The
// first phase to claim an issue key wins the day.
func (a *Aggregator) ClassifyDay(day time.Time) ([]models.Classification, error) {
	day = startOfDay(day)
	date := day.Format(jqlDateLayout)
	buf := newDayBuffer()

	resolved, err := a.Searcher.SearchAll(fmt.Sprintf(jqlResolvedByUser, date, date), fieldsSummary)
	if err != nil {
		return nil, fmt.Errorf("completed query: %w", err)
	}
	for _, issue := range resolved {
		buf.add(newClassification(issue, models.StatusCompleted, day, nil))
	}

	worked, err := a.Searcher.SearchAll(fmt.Sprintf(jqlInProgressByUser, date, date), fieldsSummary)
	if err != nil {
		return nil, fmt.Errorf("worked query: %w", err)
	}
	for _, issue := range worked {
		buf.add(newClassification(issue, models.StatusWorked, day, nil))
	}

	// The third query drops the author qualifier and fetches comments:
	// it catches issues the user touched without owning the transition.
	commented, err := a.Searcher.SearchAll(fmt.Sprintf(jqlInProgressAnyone, date, date), fieldsSummaryComment)
	if err != nil {
		return nil, fmt.Errorf("commented query: %w", err)
	}
	for _, issue := range commented {
		comments := commentsOnDay(issue.Comments, a.User, day)
		if len(comments) == 0 {
			continue
		}

		status := models.StatusInvestigated
		if hasReviewRequest(comments) {
			status = models.StatusCodeReview
		}
		buf.add(newClassification(issue, status, day, commentBodies(comments)))
	}

	logging.Debug("classified day",
		"day", day.Format("2006-01-02"),
		"count", len(buf.items))

	return buf.items, nil
}

func newClassification(issue models.Issue, status models.Status, day time.Time, comments []string) models.Classification {
	return models.Classification{
		Key:      issue.Key,
		Summary:  strings.TrimSpace(issue.Summary),
		Status:   status,
		Comments: comments,
		Date:     day,
	}
}

// commentsOnDay keeps the comments the user wrote within 24 hours of the
// day's start. The window is anchored at day start rather than checked
// against the comment's own calendar day, so a late-night comment just
// after midnight still counts toward the query day.
func commentsOnDay(comments []models.Comment, user string, day time.Time) []models.Comment {
	var kept []models.Comment
	for _, c := range comments {
		if c.Author != user {
			continue
		}
		if c.Created.Before(day) || c.Created.Sub(day) >= 24*time.Hour {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// hasReviewRequest reports whether any comment body contains the review
// marker, ignoring case.
func hasReviewRequest(comments []models.Comment) bool {
	for _, c := range comments {
		if strings.Contains(strings.ToLower(c.Body), reviewMarker) {
			return true
		}
	}
	return false
}

func commentBodies(comments []models.Comment) []string {
	bodies := make([]string, 0, len(comments))
	for _, c := range comments {
		bodies = append(bodies, c.Body)
	}
	return bodies
}
