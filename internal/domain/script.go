package domain

import "regexp"

var cyrillicRe = regexp.MustCompile(`[А-ЯЁа-яё]`)

// ContainsCyrillic reports whether s contains at least one Cyrillic rune.
// It is the validity check for learned translations and for verifying that
// name injection reached the rendered page.
func ContainsCyrillic(s string) bool {
	return cyrillicRe.MatchString(s)
}
