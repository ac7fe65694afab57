// Package datefmt renders stored UTC timestamps as wall-clock strings in a
// tenant's timezone, with Spanish month and weekday names.
package datefmt

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultZone is used when a tenant has no timezone configured.
	DefaultZone = "America/Lima"

	// DefaultPattern renders day, abbreviated month and 24-hour time.
	DefaultPattern = "dd MMM HH:mm"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishMonthsShort = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// NormalizeUTC marks a naked timestamp string as UTC by appending the "Z"
// designator when none is present. Stored timestamps are UTC; a string
// without the suffix must not be left to an implicit local interpretation.
// Note this is a suffix check only: a string carrying a different explicit
// offset (e.g. "+05:00") is returned unchanged.
func NormalizeUTC(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "Z") || hasExplicitOffset(s) {
		return s
	}
	return s + "Z"
}

// hasExplicitOffset reports whether the string ends in a +hh:mm/-hh:mm
// offset, which already pins the instant.
func hasExplicitOffset(s string) bool {
	if len(s) < 6 {
		return false
	}
	tail := s[len(s)-6:]
	if tail[0] != '+' && tail[0] != '-' {
		return false
	}
	return tail[3] == ':'
}

// FormatInTimezone renders a timestamp in the given IANA zone using the
// given pattern. The value may be a string, a time.Time, a *time.Time or
// nil; nil and empty inputs produce an empty string. Naked timestamp
// strings are assumed UTC (see NormalizeUTC). An empty or unknown zone
// falls back to DefaultZone; an empty pattern falls back to DefaultPattern.
// The function is pure: identical inputs always produce identical output.
func FormatInTimezone(value interface{}, pattern, zone string) string {
	var raw string
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if v == "" {
			return ""
		}
		raw = NormalizeUTC(v)
	case time.Time:
		raw = v.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return ""
		}
		raw = v.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return ""
	}

	if pattern == "" {
		pattern = DefaultPattern
	}

	loc := loadZone(zone)
	return render(t.In(loc), pattern)
}

func loadZone(zone string) *time.Location {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc, err = time.LoadLocation(DefaultZone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}

// render expands the pattern tokens against the (already zone-projected)
// time. Supported tokens: yyyy MMMM MMM MM dd d HH H mm ss EEEE, plus
// single-quoted literals.
func render(t time.Time, pattern string) string {
	var b strings.Builder

	for i := 0; i < len(pattern); {
		c := pattern[i]

		// Quoted literal
		if c == '\'' {
			end := strings.IndexByte(pattern[i+1:], '\'')
			if end < 0 {
				b.WriteString(pattern[i+1:])
				break
			}
			b.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		if !isPatternLetter(c) {
			b.WriteByte(c)
			i++
			continue
		}

		// Run of identical pattern letters
		j := i
		for j < len(pattern) && pattern[j] == c {
			j++
		}
		run := pattern[i:j]
		b.WriteString(expand(t, run))
		i = j
	}

	return b.String()
}

func expand(t time.Time, run string) string {
	switch run {
	case "yyyy":
		return fmt.Sprintf("%04d", t.Year())
	case "MMMM":
		return spanishMonths[int(t.Month())-1]
	case "MMM":
		return spanishMonthsShort[int(t.Month())-1]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "dd":
		return fmt.Sprintf("%02d", t.Day())
	case "d":
		return fmt.Sprintf("%d", t.Day())
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return fmt.Sprintf("%d", t.Hour())
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "EEEE":
		return spanishWeekdays[int(t.Weekday())]
	default:
		return run
	}
}

func isPatternLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
