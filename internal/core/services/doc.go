// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The discovery pipeline is split into small collaborators that the
// DiscoveryService facade wires together:
//
//   - QueryPlanner: builds one query cascade per provider
//   - CascadeController: runs a cascade against one provider with early stop
//   - RelevanceScorer and QualityScorer: pure scoring functions
//   - MergeRanker: deduplicates, sorts and truncates across providers
//
// Presentation helpers (FormatDuration, FormatCount, QualityLabel) and the
// curated fallback table live here too. Services are pure Go with no
// knowledge of any concrete provider.
package services
