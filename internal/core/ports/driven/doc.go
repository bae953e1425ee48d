// Package driven defines the interfaces the pipeline core depends on:
// the object store, the OCR backend, the bulk dataset reader, the
// semantic index, and the answer generator. Adapters under
// internal/adapters/driven implement them; tests substitute fakes.
package driven
