// Package jira wraps the Jira REST client behind the query interface the
// classifier consumes.
package jira

import (
	"errors"
	"fmt"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/cenkalti/backoff/v4"

	"github.com/intapp/jiratime/internal/config"
	"github.com/intapp/jiratime/internal/logging"
	"github.com/intapp/jiratime/pkg/models"
)

// ErrRetryExhausted is returned when a search keeps failing after the
// configured number of attempts.
var ErrRetryExhausted = errors.New("jira: retry attempts exhausted")

// searchPageSize is the page size requested per search call. Jira caps
// the effective page size server-side; pagination picks up the rest.
const searchPageSize = 1000

// commentTimeLayout is the timestamp format Jira uses for comment
// creation times.
const commentTimeLayout = "2006-01-02T15:04:05.000-0700"

// Client handles interactions with the Jira API.
type Client struct {
	api   *jira.Client
	retry config.RetryConfig
}

// NewClient creates a Jira client authenticated with the configured
// credentials.
func NewClient(cfg *config.Config) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	api, err := jira.NewClient(tp.Client(), cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{
		api:   api,
		retry: cfg.Retry,
	}, nil
}

// SearchAll runs a JQL query and returns every matching issue, following
// pagination until the server reports no further results. Only the
// requested fields are fetched.
func (c *Client) SearchAll(jql string, fields []string) ([]models.Issue, error) {
	var all []models.Issue

	for startAt := 0; ; {
		issues, resp, err := c.searchPage(jql, startAt, fields)
		if err != nil {
			return nil, err
		}

		for _, issue := range issues {
			all = append(all, c.mapIssue(issue))
		}

		startAt += len(issues)
		if len(issues) == 0 || startAt >= resp.Total {
			return all, nil
		}
	}
}

// searchPage fetches a single result page, retrying failed calls with a
// fixed delay until the attempt budget runs out.
func (c *Client) searchPage(jql string, startAt int, fields []string) ([]jira.Issue, *jira.Response, error) {
	opts := &jira.SearchOptions{
		StartAt:    startAt,
		MaxResults: searchPageSize,
		Fields:     fields,
	}

	var (
		issues []jira.Issue
		resp   *jira.Response
	)

	operation := func() error {
		var err error
		issues, resp, err = c.api.Issue.Search(jql, opts)
		if err != nil {
			logging.Warn("jira search failed, retrying",
				"jql", jql,
				"start_at", startAt,
				"error", err)
		}
		return err
	}

	policy := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(c.retry.Delay),
		uint64(c.retry.MaxAttempts-1),
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, nil, fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, c.retry.MaxAttempts, err)
	}

	return issues, resp, nil
}

// mapIssue converts a raw Jira issue into the internal record, dropping
// comments whose creation timestamp cannot be parsed.
func (c *Client) mapIssue(issue jira.Issue) models.Issue {
	mapped := models.Issue{
		Key: issue.Key,
	}

	if issue.Fields == nil {
		return mapped
	}
	mapped.Summary = issue.Fields.Summary

	if issue.Fields.Comments == nil {
		return mapped
	}
	for _, comment := range issue.Fields.Comments.Comments {
		created, err := parseCommentTime(comment.Created)
		if err != nil {
			logging.Warn("skipping comment with malformed timestamp",
				"issue", issue.Key,
				"created", comment.Created,
				"error", err)
			continue
		}

		mapped.Comments = append(mapped.Comments, models.Comment{
			Author:  comment.Author.Name,
			Body:    comment.Body,
			Created: created,
		})
	}

	return mapped
}

// parseCommentTime parses a Jira comment timestamp, accepting RFC 3339
// as a fallback for servers that omit milliseconds.
func parseCommentTime(value string) (time.Time, error) {
	if t, err := time.Parse(commentTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
