package types

import (
	"fmt"
	"strings"
)

// Kind is how a tracked entry is materialised in the home directory.
type Kind string

const (
	// KindSymlink places a symlink at the destination pointing into the repository
	KindSymlink Kind = "symlink"

	// KindCopy places an independent copy of the repository file at the destination
	KindCopy Kind = "copy"
)

// DefaultKind is used when a manifest entry omits its type.
const DefaultKind = KindSymlink

// Kinds lists every valid kind in display order.
func Kinds() []Kind {
	return []Kind{KindSymlink, KindCopy}
}

// ParseKind converts a string into a Kind. An empty string yields DefaultKind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultKind, nil
	case string(KindSymlink):
		return KindSymlink, nil
	case string(KindCopy):
		return KindCopy, nil
	default:
		return "", fmt.Errorf("unknown entry type %q (expected symlink or copy)", s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSymlink, KindCopy:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
