// Package manifest loads, queries and persists the tracked-files document
// (config/files.yaml).
//
// Two on-disk shapes are read. The flat shape is a single "entries" list:
//
//	entries:
//	  - source: files/gitconfig
//	    dest: .gitconfig
//	    type: symlink
//	    platform: darwin
//
// The legacy shape groups source-to-dest mappings by kind and platform:
//
//	symlinks:
//	  files/gitconfig: .gitconfig
//	copies:
//	  files/ssh_config: .ssh/config
//	platform:
//	  darwin:
//	    symlinks:
//	      platform/mac/aerospace.toml: .aerospace.toml
//
// Both are normalised into []types.FileEntry at the decode boundary. Save
// only ever writes the flat shape, so a legacy document is upgraded the
// first time it is mutated.
package manifest
