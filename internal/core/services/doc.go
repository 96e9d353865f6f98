// Package services implements the driving port interfaces.
// Services contain the core business logic: check digit validation,
// barcode field extraction, catalog indexing and cross-referencing,
// and the batch import pipelines.
//
// Services are pure Go, computation-only, and perform no I/O of their
// own; adapters load the catalog and own the stores.
package services
