// Package slug builds URL slugs for listings, categories and plans.
package slug

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// maxLen keeps slugs readable in URLs and sitemaps.
const maxLen = 80

// Make lower-cases s and joins runs of letters/digits with single dashes.
func Make(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == '&':
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
			}
			b.WriteString("and")
			dash = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if r > unicode.MaxASCII {
				// devanagari and other scripts are dropped; listings usually
				// carry a latin name alongside
				continue
			}
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	return out
}

// ExistsFunc reports whether a slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Unique returns Make(name), suffixed with -2, -3, ... until exists reports false.
// An empty base falls back to fallback.
func Unique(ctx context.Context, name, fallback string, exists ExistsFunc) (string, error) {
	base := Make(name)
	if base == "" {
		base = fallback
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		head := base
		if len(head)+len(suffix) > maxLen {
			head = strings.TrimRight(head[:maxLen-len(suffix)], "-")
		}
		candidate = head + suffix
	}
}

// Valid reports whether s is already in the form Make produces: lower-case
// ascii letters and digits in dash-separated runs, at most maxLen bytes.
func Valid(s string) bool {
	if s == "" || len(s) > maxLen || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	prev := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-':
			if prev == '-' {
				return false
			}
		default:
			return false
		}
		prev = c
	}
	return true
}
