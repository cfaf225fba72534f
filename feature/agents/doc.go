// Package agents serves the catalog of playable agents.
//
// The catalog is reference data pulled from valorant-api.com the first time it
// is read while the table is empty:
//
//	GET  /agents          list agents, filling the table on first use
//	POST /agents/refresh  clear the table so the next read refetches it
package agents
