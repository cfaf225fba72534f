// Package cache provides the Get/Set/Delete store used in front of the match
// history listing and for background task state.
//
// Two implementations exist: Redis, shared by every process pointing at the same
// server, and Memory, an in-process fallback used when no redis address is
// configured and in tests. Both honour a per-entry TTL.
//
// # Usage
//
//	c, err := cache.New(ctx, cfg.Redis)
//	_ = c.Set(ctx, "player_matches_abc", payload, time.Minute)
//	value, ok, err := c.Get(ctx, "player_matches_abc")
package cache
