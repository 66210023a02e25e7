// Package configs handles Envault's on-disk configuration: resolution of
// the store root directory and the TOML project registry kept inside it.
package configs
