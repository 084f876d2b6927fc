package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/screener/internal/identity"
	"github.com/spiffcs/screener/internal/log"
	"github.com/spiffcs/screener/internal/model"
)

// FetchActivity screens one username. It issues at most one request per
// resource (profile, public events, owned repositories) and never returns a
// partial result: any failure after the profile lookup collapses to a
// TransportError, or RateLimited when the failure is a rate limit.
func (c *Client) FetchActivity(ctx context.Context, username string) model.ActivityResult {
	if identity.IsSentinel(username) {
		return model.TransportError("invalid or missing username")
	}

	start := time.Now()

	// go-github interpolates the login into the path unescaped.
	login := url.PathEscape(username)

	user, _, err := c.client.Users.Get(ctx, login)
	if err != nil {
		result := classifyError(err, true)
		log.Debug("profile lookup failed", "username", username, "outcome", result.Outcome, "error", err)
		return result
	}

	counts := model.ActivityCounts{PublicRepos: user.GetPublicRepos()}

	counts.RecentEvents, err = c.countContributionEvents(ctx, login)
	if err != nil {
		log.Debug("event feed failed", "username", username, "error", err)
		return classifyError(err, false)
	}

	counts.ForkedRepos, err = c.countForkedRepos(ctx, login)
	if err != nil {
		log.Debug("repository list failed", "username", username, "error", err)
		return classifyError(err, false)
	}

	result := model.Classify(counts, user.GetHTMLURL())
	log.Debug("screened user",
		"username", username,
		"outcome", result.Outcome,
		"public_repos", counts.PublicRepos,
		"forked_repos", counts.ForkedRepos,
		"recent_events", counts.RecentEvents,
		"duration", time.Since(start).Round(time.Millisecond))

	return result
}

// countContributionEvents counts the allow-listed events on the first page
// of the user's public event feed. login must already be path-escaped.
func (c *Client) countContributionEvents(ctx context.Context, login string) (int, error) {
	events, _, err := c.client.Activity.ListEventsPerformedByUser(ctx, login, true, &gh.ListOptions{
		PerPage: c.pageSize,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list public events: %w", err)
	}

	n := 0
	for _, e := range events {
		if c.events[e.GetType()] {
			n++
		}
	}
	return n, nil
}

// countForkedRepos counts forks on the first page of the user's owned repositories.
func (c *Client) countForkedRepos(ctx context.Context, login string) (int, error) {
	repos, _, err := c.client.Repositories.List(ctx, login, &gh.RepositoryListOptions{
		Type: "owner",
		ListOptions: gh.ListOptions{
			PerPage: c.pageSize,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list repositories: %w", err)
	}

	n := 0
	for _, r := range repos {
		if r.GetFork() {
			n++
		}
	}
	return n, nil
}

// classifyError maps a request error to a failure variant. A 404 only means
// NotFound on the profile request itself.
func classifyError(err error, profile bool) model.ActivityResult {
	if IsRateLimitError(err) {
		return model.RateLimited()
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		code := errResp.Response.StatusCode
		if profile && code == http.StatusNotFound {
			return model.NotFound()
		}
		return model.TransportError(fmt.Sprintf("unexpected status %d", code))
	}

	return model.TransportError(describeTransportError(err))
}

// IsRateLimitError reports whether err signals an exhausted or abused rate limit.
func IsRateLimitError(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		code := errResp.Response.StatusCode
		return code == http.StatusForbidden || code == http.StatusTooManyRequests
	}

	return false
}

func describeTransportError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}

	return err.Error()
}
