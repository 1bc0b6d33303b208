package types

import (
	"fmt"
	"path"
	"strings"
)

// FileEntry is one tracked file or directory. Source is relative to the
// repository root and Dest is relative to the home directory; both use
// forward slashes. Dest is the entry's identity within a manifest.
type FileEntry struct {
	Source   string
	Dest     string
	Kind     Kind
	Platform Platform
}

// NormalizeRelPath cleans a repository- or home-relative path into the
// canonical slash-separated form used as a manifest key.
func NormalizeRelPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	p = strings.TrimPrefix(p, "~/")
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(p), "./")
}

// AppliesTo reports whether the entry should be reconciled on platform p.
func (e FileEntry) AppliesTo(p Platform) bool {
	return e.Platform.Matches(p)
}

// DisplayDest renders the destination the way users type it.
func (e FileEntry) DisplayDest() string {
	return "~/" + e.Dest
}

func (e FileEntry) String() string {
	s := fmt.Sprintf("%s %s -> %s", e.Kind, e.Source, e.DisplayDest())
	if !e.Platform.IsAll() {
		s += fmt.Sprintf(" [%s]", e.Platform)
	}
	return s
}
