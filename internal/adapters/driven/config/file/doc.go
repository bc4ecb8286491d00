// Package file provides TOML file-backed configuration storage.
package file
