// Package registry maps check names used in scripts to their implementation.
package registry
