// Package slug derives URL-safe storage keys from display names.
package slug

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is the base used when a name yields no usable characters.
const Fallback = "cv"

// ErrTaken is returned by a ClaimFunc when the candidate already exists.
var ErrTaken = errors.New("slug taken")

// Slugify lowercases name, strips diacritics and collapses every run of
// characters outside [a-z0-9] into a single hyphen.
func Slugify(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Base returns the slug every candidate for displayName starts from.
func Base(displayName string) string {
	if s := Slugify(displayName); s != "" {
		return s
	}
	return Fallback
}

// Candidate returns the n-th candidate for base: base, base-1, base-2, ...
func Candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// Valid reports whether s has the shape Slugify produces.
func Valid(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}

// Allocate returns the first candidate for displayName that exists reports
// as unused. The probe and the later write are separate steps, so two
// concurrent callers can be handed the same slug.
func Allocate(displayName string, exists func(candidate string) bool) string {
	base := Base(displayName)
	for n := 0; ; n++ {
		if c := Candidate(base, n); !exists(c) {
			return c
		}
	}
}

// ClaimFunc atomically creates a record under candidate, returning ErrTaken
// (possibly wrapped) when it already exists.
type ClaimFunc func(ctx context.Context, candidate string) error

// Claim walks the same candidate sequence as Allocate, but each step is a
// create-if-absent, so a returned slug is owned by the caller.
func Claim(ctx context.Context, displayName string, create ClaimFunc) (string, int, error) {
	base := Base(displayName)
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", n, err
		}
		c := Candidate(base, n)
		err := create(ctx, c)
		if err == nil {
			return c, n, nil
		}
		if !errors.Is(err, ErrTaken) {
			return "", n, err
		}
	}
}
