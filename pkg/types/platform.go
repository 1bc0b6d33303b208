package types

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies an operating system an entry can be restricted to.
// The zero value means "all platforms".
type Platform string

const (
	PlatformAll     Platform = ""
	PlatformDarwin  Platform = "darwin"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
)

// Platforms lists every concrete platform tag.
func Platforms() []Platform {
	return []Platform{PlatformDarwin, PlatformLinux, PlatformWindows}
}

// ParsePlatform converts a tag into a Platform. Empty input yields PlatformAll.
// "macos" and "mac" are accepted as aliases for darwin.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return PlatformAll, nil
	case "darwin", "macos", "mac":
		return PlatformDarwin, nil
	case "linux":
		return PlatformLinux, nil
	case "windows":
		return PlatformWindows, nil
	default:
		return "", fmt.Errorf("unknown platform %q (expected darwin, linux or windows)", s)
	}
}

// PlatformFromTag reads a manifest tag. Unknown tags are kept as inert
// values that match no supported platform, so only their entry is excluded.
func PlatformFromTag(s string) Platform {
	if p, err := ParsePlatform(s); err == nil {
		return p
	}
	return Platform(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether p is the wildcard or one of Platforms().
func (p Platform) Known() bool {
	if p.IsAll() {
		return true
	}
	for _, known := range Platforms() {
		if p == known {
			return true
		}
	}
	return false
}

// CurrentPlatform returns the platform the binary is running on.
func CurrentPlatform() Platform {
	p, err := ParsePlatform(runtime.GOOS)
	if err != nil {
		// Unsupported systems only see untagged entries
		return Platform(runtime.GOOS)
	}
	return p
}

// IsAll reports whether the platform is the "all platforms" wildcard.
func (p Platform) IsAll() bool {
	return p == PlatformAll
}

// Matches reports whether an entry tagged with p applies on the target platform.
func (p Platform) Matches(target Platform) bool {
	return p.IsAll() || p == target
}

func (p Platform) String() string {
	if p.IsAll() {
		return "all"
	}
	return string(p)
}
