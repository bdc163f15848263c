// Package sanitize turns extracted titles into names that are safe to use
// as file names on common file systems.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxFilenameBytes is the longest name most file systems accept.
const MaxFilenameBytes = 255

var (
	illegal        = regexp.MustCompile(`[/?<>\\:*|"]`)
	control        = regexp.MustCompile(`[\x00-\x1f\x80-\x9f]`)
	reserved       = regexp.MustCompile(`^\.+$`)
	windowsNames   = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	windowsTrailer = regexp.MustCompile(`[. ]+$`)
)

// Filename removes path separators, characters that Windows forbids,
// control characters, reserved names and trailing dots or spaces from s,
// and truncates the result to MaxFilenameBytes. The text is put in NFC
// first so that equal titles give equal names. The result may be empty.
func Filename(s string) string {
	s = norm.NFC.String(s)
	s = illegal.ReplaceAllString(s, "")
	s = control.ReplaceAllString(s, "")
	s = reserved.ReplaceAllString(s, "")
	s = windowsNames.ReplaceAllString(s, "")
	s = windowsTrailer.ReplaceAllString(s, "")
	return truncate(s, MaxFilenameBytes)
}

// truncate shortens s to at most n bytes without splitting a character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return strings.TrimRight(s, ". ")
}
