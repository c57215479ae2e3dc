// Package match reconciles member sheet names with rate sheet names.
//
// Names match when either one, trimmed, contains the other. This tolerates
// honorifics and full names ("山田" vs "山田 太郎") but has no notion of a
// best match: the first known name in slice order wins.
package match

import "strings"

// Match returns the first name in known that contains candidate or is
// contained in it. Blank names never match.
func Match(candidate string, known []string) (string, bool) {
	c := strings.TrimSpace(candidate)
	if c == "" {
		return "", false
	}
	for _, name := range known {
		if matches(c, name) {
			return name, true
		}
	}
	return "", false
}

// Ambiguous returns every name in known that matches candidate. More than
// one result means Match picked by order alone.
func Ambiguous(candidate string, known []string) []string {
	c := strings.TrimSpace(candidate)
	if c == "" {
		return nil
	}
	var hits []string
	for _, name := range known {
		if matches(c, name) {
			hits = append(hits, name)
		}
	}
	return hits
}

func matches(candidate, name string) bool {
	n := strings.TrimSpace(name)
	if n == "" {
		return false
	}
	return strings.Contains(candidate, n) || strings.Contains(n, candidate)
}
