// Package services contains the orchestration logic: the idempotent
// persistence layer, the two-phase collection run, the sequential
// reindex trigger, and the persona query service. Services depend
// only on ports; adapters are injected at startup.
package services
