// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search pipeline lives here: the Analyzer classifies a query, the
// BackendRegistry selects one backend, and the SearchService invokes it
// and post-filters the results into the canonical response shape.
package services
