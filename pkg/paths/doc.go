// Package paths provides centralized path handling for dotfiles.
//
// A Paths value is built once per process (see New) and passed explicitly to
// every component that needs to locate the repository, the home directory,
// the manifest or any auxiliary document. It also carries the detected
// platform, so nothing downstream consults process-wide state.
package paths
