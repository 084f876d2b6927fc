// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"context"

	"github.com/spiffcs/screener/internal/model"
)

// ActivityFetcher screens a single username against the profile API.
// Implementations never return an error: every failure is a variant of
// model.ActivityResult.
type ActivityFetcher interface {
	FetchActivity(ctx context.Context, username string) model.ActivityResult
}

// Ensure Client implements ActivityFetcher interface.
var _ ActivityFetcher = (*Client)(nil)
