package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/screener/internal/constants"
	"github.com/spiffcs/screener/internal/log"
	"golang.org/x/oauth2"
)

// rateLimitTransport wraps an http.RoundTripper to handle GitHub rate limits
type rateLimitTransport struct {
	base  http.RoundTripper
	state *RateLimitState
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Don't spend a request we already know will be refused
	if t.state.IsLimited() {
		return nil, ErrRateLimited
	}

	log.Trace("api request", "method", req.Method, "path", req.URL.Path)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining >= 0 && limit > 0 {
		t.state.Update(remaining, limit, resetAt)
	}

	if remaining <= constants.RateLimitLowWatermark && remaining > 0 {
		log.Debug("rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	// 403 with an exhausted quota or 429
	if resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0") {
		t.state.SetLimited(true, resetAt)
		_ = resp.Body.Close()
		return nil, ErrRateLimited
	}

	return resp, nil
}

// Options configures a Client.
type Options struct {
	// Token is an optional personal access token. Without it requests are
	// unauthenticated and subject to the lower anonymous rate limit.
	Token string

	// BaseURL overrides the REST endpoint (GitHub Enterprise, tests).
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// PageSize is the page size for the event feed and repository list.
	PageSize int

	// ContributionEvents overrides the event types counted as contributions.
	ContributionEvents []string
}

// Client wraps the GitHub API client
type Client struct {
	client *gh.Client
	limits *RateLimitState
	events map[string]bool

	pageSize      int
	authenticated bool
}

// NewClient creates a new GitHub client. An empty token is legal.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var hc *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		hc = oauth2.NewClient(ctx, ts)
	} else {
		log.Debug("no GitHub token configured, using unauthenticated requests")
		hc = &http.Client{Transport: http.DefaultTransport}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	hc.Timeout = timeout

	limits := &RateLimitState{}
	hc.Transport = &rateLimitTransport{
		base:  hc.Transport,
		state: limits,
	}

	client := gh.NewClient(hc)
	client.UserAgent = constants.UserAgent

	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}

	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	kinds := opts.ContributionEvents
	if len(kinds) == 0 {
		kinds = constants.DefaultContributionEvents
	}
	events := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		events[k] = true
	}

	return &Client{
		client:        client,
		limits:        limits,
		events:        events,
		pageSize:      pageSize,
		authenticated: opts.Token != "",
	}, nil
}

// Authenticated reports whether requests carry a token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}

// RateLimitStatus returns the rate limit last observed by this client.
func (c *Client) RateLimitStatus() (remaining, limit int, resetAt time.Time, limited bool) {
	return c.limits.Status()
}
