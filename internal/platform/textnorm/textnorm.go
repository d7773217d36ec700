// Package textnorm holds the pure text helpers shared by every lookup and
// rendering path: accent folding for diacritic-insensitive name search,
// marker stripping, award and position code decoding, and the stat-token
// normalization tables.
package textnorm

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidYear reports a year token that is neither 2 nor 4 digits.
var ErrInvalidYear = errors.New("invalid year token")

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks so "Ôhtáni" matches "Ohtani".
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// FoldName lowercases and strips accents, the canonical form for all
// name-search comparisons.
func FoldName(s string) string {
	return StripAccents(strings.ToLower(s))
}

// StripMarkers removes the *, # and + annotation characters the source data
// attaches to player names, then trims whitespace.
func StripMarkers(name string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '*', '#', '+':
			return -1
		}
		return r
	}, name))
}

// ParseYear accepts a 2-digit token as 2000+n or a 4-digit token literally.
func ParseYear(token string) (int, error) {
	if len(token) != 2 && len(token) != 4 {
		return 0, ErrInvalidYear
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, ErrInvalidYear
	}
	if len(token) == 2 {
		return 2000 + n, nil
	}
	return n, nil
}

var positionCodes = map[byte]string{
	'1': "P",
	'2': "C",
	'3': "1B",
	'4': "2B",
	'5': "3B",
	'6': "SS",
	'7': "LF",
	'8': "CF",
	'9': "RF",
	'D': "DH",
	'H': "PH",
}

// ParsePositions decodes a position-code string ("*98/HD4") into readable
// abbreviations ("*RF, CF / PH, DH, 2B"). Slash-separated groups become
// "primary / secondary", duplicates within a group are dropped preserving
// first-seen order, and a leading * marker survives.
func ParsePositions(code string) string {
	if code == "" {
		return ""
	}

	hasStar := strings.HasPrefix(code, "*")
	if hasStar {
		code = code[1:]
	}

	groups := make([]string, 0, 2)
	for _, part := range strings.Split(code, "/") {
		names := make([]string, 0, len(part))
		seen := make(map[string]bool, len(part))
		for i := 0; i < len(part); i++ {
			name, ok := positionCodes[part[i]]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
		if len(names) > 0 {
			groups = append(groups, strings.Join(names, ", "))
		}
	}

	out := strings.Join(groups, " / ")
	if hasStar {
		out = "*" + out
	}
	return out
}

// ParseAwards tokenizes a concatenated award-code string ("CYA-1MVP-13") into
// a comma-joined display form ("CYA-1, MVP-13"). At each position the ranked
// patterns (MVP-n, CYA-n, ROY-n before the bare AS/GG/SS codes) are tried
// longest-rank-first so "MVP-13" is never read as MVP-1 plus a stray digit;
// unmatched characters are skipped. A nonempty string that yields no tokens
// is returned unchanged.
func ParseAwards(awards string) string {
	if awards == "" {
		return ""
	}

	var tokens []string
	for pos := 0; pos < len(awards); {
		token, width := matchAward(awards[pos:])
		if width == 0 {
			pos++
			continue
		}
		tokens = append(tokens, token)
		pos += width
	}

	if len(tokens) == 0 {
		return awards
	}
	return strings.Join(tokens, ", ")
}

var rankedAwards = []string{"MVP-", "CYA-", "ROY-"}
var plainAwards = []string{"AS", "GG", "SS"}

func matchAward(s string) (string, int) {
	for _, prefix := range rankedAwards {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		digits := 0
		for digits < 2 && len(prefix)+digits < len(s) && isDigit(s[len(prefix)+digits]) {
			digits++
		}
		if digits == 0 {
			continue
		}
		width := len(prefix) + digits
		return s[:width], width
	}
	for _, code := range plainAwards {
		if strings.HasPrefix(s, code) {
			return code, len(code)
		}
	}
	return "", 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
