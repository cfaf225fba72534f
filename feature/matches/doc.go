// Package matches is the match history feature.
//
// It wires the synchronization engine (matchsync) to its collaborators and
// exposes it over HTTP:
//
//	GET  /matches/:puuid                history cards, read through the listing cache
//	GET  /matches/detail/:matchId       scoreboard of one stored match
//	GET  /matches/raw/:region/:matchId  archived provider JSON
//	POST /matches/sync/:region/:puuid   synchronous sync, interactive cap
//	POST /matches/tasks                 queue a background sync
//	GET  /matches/tasks/:id             poll a background sync
//	POST /matches/refresh               clear all stored matches
//
// The listing cache is keyed by player and generation; every sync that
// changes a player's history moves the player to a new generation. A Scheduler
// can queue background syncs for every known player at a fixed interval.
package matches
