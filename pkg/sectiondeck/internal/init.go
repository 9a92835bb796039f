// Package internal contains the shared infrastructure for the sectiondeck
// packages: logging, held-key repeat timing and viewport geometry.
// Types and functions in this package are not part of the public API.
package internal
