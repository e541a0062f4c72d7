package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	workspaceHintPrefix = "workspace:current:"
	workspaceHintTTL    = 24 * time.Hour
)

// WorkspaceHintCache stores the per-user "current workspace id" hint.
// The hint is advisory: provisioning re-validates it against a membership
// row before trusting it, so a stale or revoked entry is harmless.
type WorkspaceHintCache struct {
	client *Client
}

// NewWorkspaceHintCache creates a new workspace hint cache
func NewWorkspaceHintCache(client *Client) *WorkspaceHintCache {
	return &WorkspaceHintCache{client: client}
}

// Get retrieves the cached workspace id for a user, uuid.Nil on miss
func (c *WorkspaceHintCache) Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	key := fmt.Sprintf("%s%s", workspaceHintPrefix, userID.String())

	val, err := c.client.rdb.Get(ctx, key).Result()
	if err != nil {
		return uuid.Nil, nil // Cache miss
	}

	workspaceID, err := uuid.Parse(val)
	if err != nil {
		// Corrupt entry, drop it
		c.client.rdb.Del(ctx, key)
		return uuid.Nil, nil
	}

	return workspaceID, nil
}

// Set caches the workspace id for a user
func (c *WorkspaceHintCache) Set(ctx context.Context, userID, workspaceID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", workspaceHintPrefix, userID.String())
	return c.client.rdb.Set(ctx, key, workspaceID.String(), workspaceHintTTL).Err()
}

// Invalidate removes the cached workspace id for a user
func (c *WorkspaceHintCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", workspaceHintPrefix, userID.String())
	return c.client.rdb.Del(ctx, key).Err()
}
