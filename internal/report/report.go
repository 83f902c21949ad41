// Package report renders classifications into the tab-separated
// timesheet format and writes the result to disk.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/intapp/jiratime/pkg/models"
)

const (
	taskDevelopment   = "IntApp.Wilco. Development"
	taskInvestigation = "IntApp.Wilco. Investigation"

	// communicationLine is the fixed daily overhead entry emitted at the
	// top of every date group. It is part of the output contract, not
	// derived from tracker data.
	communicationLine = "IntApp.Wilco. Communication\t2\tCommunications with the team, daily scrum, processed emails."

	// dateLayout renders dates without leading zeros, e.g. 5/6/2024.
	dateLayout = "1/2/2006"

	// The consumer of the report expects Windows line endings.
	lineEnding = "\r\n"
)

// Format renders the classifications grouped by day. Days are ordered
// ascending, entries within a day ascending by issue key, so repeated
// runs over the same input produce byte-identical output.
func Format(classifications []models.Classification) (string, error) {
	groups := make(map[time.Time][]models.Classification)
	for _, c := range classifications {
		groups[c.Date] = append(groups[c.Date], c)
	}

	dates := make([]time.Time, 0, len(groups))
	for date := range groups {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var sb strings.Builder
	for _, date := range dates {
		entries := groups[date]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

		day := date.Format(dateLayout)
		fmt.Fprintf(&sb, "%s\t%s\t%s%s", communicationLine, day, day, lineEnding)

		for _, entry := range entries {
			line, err := formatEntry(entry, day)
			if err != nil {
				return "", err
			}
			sb.WriteString(line)
			sb.WriteString(lineEnding)
		}
	}

	return sb.String(), nil
}

// formatEntry renders one classification as a five-field line. A status
// outside the known enumeration is a bug and fails the whole run rather
// than producing a silently wrong report.
func formatEntry(c models.Classification, day string) (string, error) {
	var label, effort string
	switch c.Status {
	case models.StatusNone:
		label = ""
	case models.StatusCodeReview:
		label = "Code Review."
		effort = "0.5"
	case models.StatusCompleted:
		label = "Completed."
	case models.StatusWorked:
		label = "Worked."
	case models.StatusInvestigated:
		label = "Investigated."
	default:
		return "", fmt.Errorf("unrecognized classification status %v for issue %s", c.Status, c.Key)
	}

	summary := strings.TrimSpace(c.Summary)
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	description := fmt.Sprintf("%s %s %s", c.Key, summary, label)

	task := taskDevelopment
	if c.Status == models.StatusInvestigated {
		task = taskInvestigation
	}

	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s", task, effort, description, day, day), nil
}
