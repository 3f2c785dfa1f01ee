package selection

import (
	"strings"

	"github.com/morozRed/cratemap/internal/rustdoc"
)

// NormalizeFilter turns a user filter into path segments.
//
//	"::style"       -> [crate style]
//	"Canvas"        -> [crate Canvas]
//	"shapes::style" -> [shapes style]
//
// Empty segments are dropped, so "::" alone names the crate root.
func NormalizeFilter(crateName, filter string) []string {
	filter = strings.TrimSpace(filter)
	anchored := strings.HasPrefix(filter, rustdoc.PathSeparator)
	bare := !strings.Contains(filter, rustdoc.PathSeparator)

	segments := make([]string, 0, 4)
	if anchored || bare {
		segments = append(segments, crateName)
	}
	for _, segment := range strings.Split(filter, rustdoc.PathSeparator) {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// HasPathPrefix reports whether prefix is a segment-wise prefix of path.
// "::style" matches "::style::TextStyle" but not "::stylesheet".
func HasPathPrefix(path, prefix []string) bool {
	if len(prefix) == 0 || len(prefix) > len(path) {
		return false
	}
	for i, segment := range prefix {
		if path[i] != segment {
			return false
		}
	}
	return true
}

// FormatPath joins segments with the path separator.
func FormatPath(path []string) string {
	return strings.Join(path, rustdoc.PathSeparator)
}
