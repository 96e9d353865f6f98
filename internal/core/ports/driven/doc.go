// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal
// architecture. Core services depend on these interfaces, and
// infrastructure adapters implement them.
//
// # Interfaces
//
//   - CatalogSource: loads the bulk catalog JSON document
//   - RecordStore: local persistence for import snapshots and decode history
//   - ArticleStore: downstream article table targeted by backfill
//   - ConfigStore: application configuration
//
// RecordStore and ArticleStore are optional; commands that need them
// fail with a clear error when they are not configured, while decode
// and lookup keep working.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
