// Package file provides the TOML-backed ConfigStore.
//
// Settings are addressed by dotted keys ("cascade.timeout") and written to
// disk as nested tables:
//
//	[cascade]
//	timeout = "20s"
package file
