// Package suggest is the core engine: query normalization, four-tier
// ranking, adaptive per-section learning with semantic duplicate
// suppression, bounded result caching, and highlight reconstruction.
package suggest

// Catalog is the static taxonomy content collaborator the engine ranks
// against. Implemented by pkg/taxonomy; kept as an interface so tests can
// substitute a fixture catalog.
type Catalog interface {
	// ResolveSectionKey maps a raw vehicle-area identifier to a canonical
	// section key, or "" when unresolvable.
	ResolveSectionKey(raw string) string

	// Rank returns the section's catalog matches for a normalized query,
	// best-first. Nil for an unknown section or empty query.
	Rank(sectionKey, normQuery string) []Ranked

	// HasSemanticKey reports whether a catalog phrase in the section
	// already carries the semantic key.
	HasSemanticKey(sectionKey, semKey string) bool

	// Sections lists canonical section keys.
	Sections() []string

	// Stats returns catalog counters for diagnostics.
	Stats() map[string]int
}
