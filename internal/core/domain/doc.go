// Package domain contains the core types of the Histora pipeline.
// It has no dependencies on adapters or external services; everything
// here is plain data and pure derivation logic (storage keys, year
// fallback, unified metadata schema).
package domain
