// Package driving defines the interfaces through which adapters call
// INTO the core.
//
// These are the "driving" or "primary" ports in hexagonal
// architecture. The CLI adapter depends on these interfaces; the
// services package implements them.
package driving
