// Package domain contains the core value types of udiscan: decoded
// barcodes, catalog records and the domain error taxonomy.
//
// Domain types have no behaviour beyond simple accessors and no
// dependencies outside the standard library. All business logic lives
// in the services package.
package domain
