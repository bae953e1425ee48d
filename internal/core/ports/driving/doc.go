// Package driving defines the interfaces through which the CLI and
// HTTP surfaces drive the pipeline core.
package driving
