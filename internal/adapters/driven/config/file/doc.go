// Package file provides TOML-backed configuration persistence.
//
// Settings live in ~/.clockprose/config.toml. Loading overlays the file
// on the built-in defaults, so a partial file only overrides what it names.
package file
