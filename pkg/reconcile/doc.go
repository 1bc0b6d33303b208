// Package reconcile compares tracked entries against the home directory and
// brings destinations in line with the repository.
//
// Two reconcilers share one status vocabulary (types.Status): Symlinks places
// a link at the destination pointing into the repository, Copies places an
// independent copy. Reconcilers are stateless; everything they need comes in
// through the call arguments and the injected types.FS.
//
// Expected conditions (absent destination, occupied destination) are reported
// through the returned status or action. Only unexpected filesystem failures
// are returned as errors.
package reconcile
