package gpuprice

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Field extractors pull a single typed value out of free-form marketing copy.
// Each returns (value, false) rather than an error on malformed input: an
// individual extraction miss is never fatal, the field is simply absent.

var (
	wsRE      = regexp.MustCompile(`\s+`)
	moneyRE   = regexp.MustCompile(`\$?\s*(\d+(?:\.\d+)?)`)
	integerRE = regexp.MustCompile(`\d[\d,]*`)
)

// CleanText collapses consecutive whitespace to a single space and trims the
// result, making the extractors position-independent.
func CleanText(s string) string {
	return strings.TrimSpace(wsRE.ReplaceAllString(s, " "))
}

// Money locates the first monetary numeral in s, optionally preceded by a
// currency symbol: "$3.79" -> 3.79, "1.25 / GPU" -> 1.25.
func Money(s string) (float64, bool) {
	m := moneyRE.FindStringSubmatch(CleanText(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Integer locates the first run of digits in s, strips grouping separators,
// and returns it as an int: "4x 7.6TB" -> 4, "1,024" -> 1024.
func Integer(s string) (int, bool) {
	m := integerRE.FindString(CleanText(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0, false
	}
	return v, true
}

// measurementREs caches one compiled pattern per unit marker. Only a handful
// of units ("GB", "TB") ever occur, but Measurement runs once per cell across
// every parsed page.
var measurementREs sync.Map

func measurementRE(unit string) *regexp.Regexp {
	if re, ok := measurementREs.Load(unit); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + regexp.QuoteMeta(unit))
	measurementREs.Store(unit, re)
	return re
}

// Measurement locates a numeral immediately followed by the given
// case-insensitive unit marker, allowing intervening whitespace:
// "141GB", "141 GB" and "141 gb" all -> 141.0 for unit "GB".
func Measurement(s, unit string) (float64, bool) {
	m := measurementRE(unit).FindStringSubmatch(CleanText(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
