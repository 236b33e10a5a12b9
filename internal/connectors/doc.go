// Package connectors builds the provider adapters that search external
// learning-content sources. Each subpackage implements [driven.Provider] for
// one source (youtube, coursera, github, mdn); this package turns provider
// settings into the enabled set.
package connectors
