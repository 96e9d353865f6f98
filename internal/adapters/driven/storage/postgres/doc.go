// Package postgres reads and updates article master data in the
// central PostgreSQL database, used by the GTIN backfill.
package postgres
