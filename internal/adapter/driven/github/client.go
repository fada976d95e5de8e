// Package github implements the ReviewHost port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ewatkins/checkmate/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewHost = (*Client)(nil)

// Client implements the driven.ReviewHost port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// CreateCommitStatus attaches a status marker to the given commit. GitHub
// keys statuses by context, so repeating a context replaces the marker
// rather than adding a second one.
func (c *Client) CreateCommitStatus(ctx context.Context, repo, sha string, status driven.CommitStatus) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	_, resp, err := c.gh.Repositories.CreateStatus(ctx, owner, name, sha, gh.RepoStatus{
		State:       gh.Ptr(status.State),
		TargetURL:   gh.Ptr(status.TargetURL),
		Description: gh.Ptr(status.Description),
		Context:     gh.Ptr(status.Context),
	})
	if err != nil {
		return fmt.Errorf("creating status %q on %s@%s: %w", status.Context, repo, sha, err)
	}

	logRateLimit(resp, repo+"/statuses", 0, 1)
	return nil
}

// ListIssueComments retrieves all top-level comments on a pull request.
// It handles pagination automatically and maps go-github types to port types.
func (c *Client) ListIssueComments(ctx context.Context, repo string, prNumber int) ([]driven.IssueComment, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var allComments []driven.IssueComment

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, owner, name, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing comments for %s#%d (page %d): %w", repo, prNumber, opts.Page, err)
		}

		logRateLimit(resp, repo+"/comments", opts.Page, len(comments))

		for _, comment := range comments {
			allComments = append(allComments, driven.IssueComment{
				ID:   comment.GetID(),
				Body: comment.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// CreateIssueComment creates a top-level comment on a pull request.
func (c *Client) CreateIssueComment(ctx context.Context, repo string, prNumber int, body string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	_, _, err = c.gh.Issues.CreateComment(ctx, owner, name, prNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("creating comment on %s#%d: %w", repo, prNumber, err)
	}

	return nil
}

// EditIssueComment replaces the body of an existing comment in place.
func (c *Client) EditIssueComment(ctx context.Context, repo string, commentID int64, body string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	_, _, err = c.gh.Issues.EditComment(ctx, owner, name, commentID, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("editing comment %d on %s: %w", commentID, repo, err)
	}

	return nil
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
