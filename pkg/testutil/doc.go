// Package testutil provides utilities for testing dotfiles components.
//
// Key components:
//   - TestEnvironment: an isolated home directory and repository in a temp
//     dir, with resolved paths, default settings and a FakeRunner
//   - FakeRunner: a runner.Runner that records commands and returns
//     scripted results, so collaborator tests never need git, rsync or ssh
//   - File helpers: small create/read/assert functions that fail the test
//     on error
//
// Usage guidelines:
//   - Reconciler and command tests use the real filesystem in the
//     environment's temp dir, since symlink semantics matter
//   - Manifest and document tests can use filesystem.NewMemory()
//   - All test data should be defined inline, not in external files
package testutil
