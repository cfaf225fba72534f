// Package henrik is the remote source adapter for the HenrikDev Valorant API.
//
// FetchPage returns one page of raw match records for (player, region, offset).
// Every request runs under the configured timeout, passes a client side rate
// limiter and a circuit breaker, and fails with a *models.RemoteFetchError whose
// Kind tells retryable failures (rate_limit, timeout, unavailable) apart from
// fatal ones (auth, not_found, bad_response).
package henrik
