// Package file is a TOML file-backed implementation of the config
// store, persisted under the udiscan config directory.
package file
