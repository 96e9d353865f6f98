// Package cli implements the udiscan command line interface.
package cli
