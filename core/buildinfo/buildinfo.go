// Package buildinfo carries version metadata stamped at link time:
//
//	-X 'github.com/m3rciful/photobot/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/m3rciful/photobot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/photobot/core/buildinfo.Date=2025-08-30T12:00:00Z'
package buildinfo

import "strings"

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = "local"
	// Date is the build time in RFC3339.
	Date = ""
)

// String renders "version (commit, date)" omitting empty parts.
func String() string {
	var meta []string
	for _, s := range []string{Commit, Date} {
		if s = strings.TrimSpace(s); s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) == 0 {
		return Version
	}
	return Version + " (" + strings.Join(meta, ", ") + ")"
}
