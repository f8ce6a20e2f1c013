package route

import "strings"

// Name identifies a route node using dot notation.
// Examples: "users", "users.detail", "admin.settings.security"
//
// Each segment names one level of the route hierarchy; the full name of a
// node therefore encodes its entire ancestry.
type Name string

// Separator is the character used to separate name segments.
const Separator = "."

// String returns the name as a string.
func (n Name) String() string {
	return string(n)
}

// Segments returns the name split by the separator.
func (n Name) Segments() []string {
	if n == "" {
		return nil
	}
	return strings.Split(string(n), Separator)
}

// SegmentCount returns the number of segments in the name.
func (n Name) SegmentCount() int {
	if n == "" {
		return 0
	}
	return strings.Count(string(n), Separator) + 1
}

// Parent returns the parent name by removing the last segment.
// Returns an empty name if there is no parent.
//
// Example: "admin.settings.security" -> "admin.settings"
func (n Name) Parent() Name {
	s := string(n)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Name(s[:idx])
}

// Child returns a child name by appending a segment.
//
// Example: "users".Child("detail") -> "users.detail"
func (n Name) Child(segment string) Name {
	if n == "" {
		return Name(segment)
	}
	return Name(string(n) + Separator + segment)
}

// Base returns the last segment of the name.
//
// Example: "admin.settings.security" -> "security"
func (n Name) Base() string {
	s := string(n)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// HasPrefix returns true if the name starts with the given prefix on a
// segment boundary. A name is its own prefix; an empty prefix matches
// everything.
//
// Example: "users.detail".HasPrefix("users") -> true,
// "userspace".HasPrefix("users") -> false.
func (n Name) HasPrefix(prefix Name) bool {
	if prefix == "" {
		return true
	}
	s := string(n)
	p := string(prefix)
	if !strings.HasPrefix(s, p) {
		return false
	}
	// Ensure we're matching complete segments
	if len(s) == len(p) {
		return true
	}
	return s[len(p)] == '.'
}

// IsAncestorOf returns true if the name is a strict ancestor of other.
func (n Name) IsAncestorOf(other Name) bool {
	return n != other && other.HasPrefix(n)
}

// Ancestry returns the name and all of its ancestors, root first.
//
// Example: "a.b.c" -> ["a", "a.b", "a.b.c"]
func (n Name) Ancestry() []Name {
	if n == "" {
		return nil
	}
	segs := n.Segments()
	out := make([]Name, 0, len(segs))
	cur := Name("")
	for _, seg := range segs {
		cur = cur.Child(seg)
		out = append(out, cur)
	}
	return out
}

// IsValid returns true if the name is valid.
// A valid name:
//   - Is not empty
//   - Does not start or end with a separator
//   - Does not contain consecutive separators
//   - Does not contain empty segments
func (n Name) IsValid() bool {
	s := string(n)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, Separator) || strings.HasSuffix(s, Separator) {
		return false
	}
	if strings.Contains(s, Separator+Separator) {
		return false
	}
	for _, seg := range n.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Join joins multiple segments into a name.
func Join(segments ...string) Name {
	return Name(strings.Join(segments, Separator))
}

// Split splits a name string into segments.
// This is a convenience function that doesn't require creating a Name first.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}
