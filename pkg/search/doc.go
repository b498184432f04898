// Package search provides the free-text course matcher, the autocomplete
// suggestion generator and the combined query pipeline that every surface
// (API, CLI) uses to compute the visible course list.
//
// All functions here are pure and total: they never fail, tolerate empty
// collections, queries and filter specs, and preserve input order. Results
// are query AND filter; suggestions are query-only over the full collection,
// independent of the active filter spec. That separation is intentional.
package search
