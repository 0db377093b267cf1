package helper

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SecondsToClock formats a race duration as mm:ss.
func SecondsToClock(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// RiderCode returns the first letter of the first name and two more from
// the surname, e.g. "Marco Pantani" is "MPA".
func RiderCode(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := []rune(words[0])
	code := string(first[0])
	if len(words) > 1 {
		last := []rune(words[len(words)-1])
		if len(last) > 2 {
			code += string(last[:2])
		} else {
			code += string(last)
		}
	} else if len(first) > 2 {
		code += string(first[1:3])
	} else {
		code += string(first[1:])
	}
	return strings.ToUpper(code)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
