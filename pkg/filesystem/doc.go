// Package filesystem provides filesystem implementations for dotfiles.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used at runtime and an afero-backed filesystem
// for tests that do not need real symlinks.
package filesystem
