// Package normalisers cleans provider text before it reaches scoring.
// Relevance matching works on plain words, so markup and entities must be
// gone before a candidate is normalised into a Resource.
package normalisers
