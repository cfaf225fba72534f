// Package metrics holds the Prometheus collectors for synchronization runs,
// remote calls and the listing cache, and the /metrics handler that serves them.
package metrics
