// Package catalog provides the query-state and result-presentation engine
// behind the browse pages of a data catalog (concepts, domains, KPIs, lines
// of business and subject categories).
//
// User input is debounced, merged with facet filters, reflected into the
// navigable address state, persisted as recent-search history and used to
// compute a bounded page of results while tolerating out-of-order responses.
//
// This package contains domain types, pure domain logic and the interfaces
// of external collaborators following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, http/, memory/).
package catalog
