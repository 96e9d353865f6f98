// Package tui implements the interactive watch surface following the
// Elm architecture. It resolves barcodes and catalog terms typed at a
// prompt, and swaps in a freshly built catalog index whenever the
// owning command reports that the catalog file changed.
package tui
