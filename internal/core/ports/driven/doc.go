// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Provider: Searches one external content source and normalises its hits
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the discovery service degrades gracefully:
//
//   - ResultCache: Caches final discovery output. Without it every call recomputes.
//   - RateLimiter: Throttles provider calls. Without it calls are unthrottled.
//   - Observer: Receives provider call and discovery measurements.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
