// Package matchsync implements the match history synchronization engine.
//
// Synchronize pages through a player's remote history starting at offset 0.
// Each page is checked against the store in bulk: new matches are normalized
// and inserted with their full roster (the requesting player's row linked),
// known matches already linked for the player count down a hit counter that
// starts at K, and known but unlinked ones are linked and reset the counter.
// A run stops when a page comes back empty, when the counter reaches zero, or
// when the safety cap of fetched records is reached.
//
// Runs are idempotent and need no locking: concurrent runs for the same player
// are reconciled by the existence checks and the store's unique constraint,
// whose violations are counted as duplicates rather than failures.
package matchsync
