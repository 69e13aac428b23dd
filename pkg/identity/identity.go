// Package identity derives the printable QR identifiers handed to students
// and normalises the name forms they are built from.
package identity

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize strips surrounding whitespace, folds accented characters to their
// base letters and uppercases the result. Two names that normalise identically
// are treated as the same name.
func Normalize(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.ToUpper(b.String())
}

// CapitalizeName rewrites a free-form name with each word capitalised,
// collapsing repeated whitespace ("ana  maría" -> "Ana María").
func CapitalizeName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// DeriveQRID builds the QR identifier for a student once its numeric id is
// known: first-name initial, the initial of each of the first two last-name
// parts, then the decimal id ("Ana" "Gómez Pérez" 7 -> "AGP7"). The id suffix
// makes the result unique even for students sharing initials. Empty name
// components contribute empty strings rather than failing; a degenerate name
// must never block student creation.
func DeriveQRID(firstName, lastName string, id int64) string {
	first := Normalize(firstName)
	last := Normalize(lastName)

	var b strings.Builder
	if first != "" {
		b.WriteRune(firstRune(first))
	}

	lastParts := strings.Fields(last)
	if len(lastParts) > 0 {
		b.WriteRune(firstRune(lastParts[0]))
	}
	if len(lastParts) > 1 {
		b.WriteRune(firstRune(lastParts[1]))
	}

	b.WriteString(strconv.FormatInt(id, 10))
	return b.String()
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
