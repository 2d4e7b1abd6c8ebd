package linkedin

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Delimiters used by LinkedIn markup to pack several values into one text node.
const (
	DotDelimiter    = " · "
	AtDelimiter     = " at "
	CommaDelimiter  = ", "
	RangeDelimiter  = " - "
	ListDelimiter   = ","
	enDashDelimiter = " – "
)

var (
	countRe = regexp.MustCompile(`(\d[\d.,'’\x{00a0} ]*)\s*([KkMm])?\b`)
	yearRe  = regexp.MustCompile(`\b(1[6-9]\d\d|20\d\d)\b`)
)

// CollapseSpace trims s and collapses every run of whitespace to one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitCompound splits s on delim into exactly n parts, in order.
// If delim is absent the whole string goes to the first part and the
// remaining parts are "". The last part keeps any further delimiters.
func SplitCompound(s, delim string, n int) []string {
	parts := make([]string, n)
	if n <= 0 {
		return parts
	}
	for i, p := range strings.SplitN(s, delim, n) {
		parts[i] = CollapseSpace(p)
	}
	return parts
}

// ParseCount returns the first count in s, honouring K/M suffixes and
// thousands separators ("1,234 followers" -> 1234, "12K" -> 12000).
// It returns 0 when s holds no number.
func ParseCount(s string) int {
	m := countRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return parseCountMatch(m)
}

// ParseRange returns the first two counts in s ("11-50 employees" -> 11, 50).
// Missing bounds are 0.
func ParseRange(s string) (start, end int) {
	matches := countRe.FindAllStringSubmatch(s, 2)
	if len(matches) > 0 {
		start = parseCountMatch(matches[0])
	}
	if len(matches) > 1 {
		end = parseCountMatch(matches[1])
	}
	return start, end
}

func parseCountMatch(m []string) int {
	digits := strings.TrimSpace(m[1])
	if m[2] == "" {
		var b strings.Builder
		for _, r := range digits {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		n, err := strconv.Atoi(b.String())
		if err != nil {
			return 0
		}
		return n
	}

	mult := 1000.0
	if strings.EqualFold(m[2], "m") {
		mult = 1000000.0
	}
	digits = strings.ReplaceAll(digits, ",", ".")
	digits = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, digits)
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f * mult))
}

// ParseYear returns the first plausible four-digit year in s, or 0.
func ParseYear(s string) int {
	m := yearRe.FindString(s)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

// Accepted year ranges. Years outside them normalize to 0.
const (
	MinFoundedYear   = 1600
	MinEducationYear = 1900
	MaxYear          = 2100
)

// parseYearIn is ParseYear restricted to [lo, MaxYear].
func parseYearIn(s string, lo int) int {
	if y := ParseYear(s); y >= lo && y <= MaxYear {
		return y
	}
	return 0
}

// NormalizeURL cleans a URL taken from markup. LinkedIn redirect wrappers are
// unwrapped, a missing scheme becomes https, and tracking query strings are
// dropped from linkedin.com URLs. Input without a usable host gives "".
func NormalizeURL(s string) string {
	s = CollapseSpace(s)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err == nil && IsLinkedInHost(u.Hostname()) && strings.HasPrefix(u.Path, "/redir/redirect") {
		if target := u.Query().Get("url"); target != "" {
			s = target
		}
	}

	if !strings.Contains(s, "://") {
		s = "https://" + strings.TrimPrefix(s, "//")
	}

	u, err = url.Parse(s)
	if err != nil || !plausibleHost(u.Hostname()) {
		return ""
	}
	if IsLinkedInHost(u.Hostname()) {
		u.RawQuery = ""
		u.Fragment = ""
	}
	return u.String()
}

// plausibleHost reports whether host looks like a public domain name:
// dot separated labels of letters, digits and hyphens.
func plausibleHost(host string) bool {
	if !strings.Contains(host, ".") || strings.Contains(host, "..") ||
		strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	for _, r := range host {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

// IsLinkedInHost reports whether host is linkedin.com or one of its
// subdomains.
func IsLinkedInHost(host string) bool {
	host = strings.ToLower(host)
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}

// splitList splits a comma separated list such as "Cloud, Consulting, and AI".
// The result is never nil.
func splitList(s string) []string {
	items := []string{}
	for _, p := range strings.Split(s, ListDelimiter) {
		p = CollapseSpace(p)
		p = strings.TrimPrefix(p, "and ")
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
