// Package domain defines the core business entities for skillscout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SubjectQuery: A normalised skill, role or free-text request
//   - QueryCascade: Ordered alternative phrasings for one provider
//   - RawCandidate: A provider-native search hit before normalisation
//   - Resource: The canonical, scored learning resource
//   - DiscoverySettings: Every tunable scoring and cascade constant
//
// It also holds the static, read-only tables shared by the planner and
// the scorers: the domain category table and the special-case cascade
// table.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
