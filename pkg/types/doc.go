// Package types defines the core value types shared by the dotfiles packages:
// the tracked FileEntry, the closed enumerations used for entry kinds,
// platforms, reconciliation statuses and create actions, and the FS
// interface every filesystem-touching component is written against.
package types
