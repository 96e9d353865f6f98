// Package file loads the bulk article catalog from a JSON file on
// disk and watches it for changes. The whole document is read into
// memory before the first lookup; there is no streaming or partial
// parse.
package file
