// Package memory provides in-process implementations of driven ports:
// a TTL result cache for the discovery facade and a ConfigStore for tests.
package memory
