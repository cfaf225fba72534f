// Package players resolves display names to stable player identities.
//
// A resolve looks the account up at the provider and upserts the local Player
// row, so renamed players are refreshed on every call:
//
//	GET /players/:name/:tag  resolve and upsert
//	GET /players             list known players
package players
