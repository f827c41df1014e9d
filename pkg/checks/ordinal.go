package checks

import "strconv"

// Ordinal spells a 1-based position as an English ordinal: 1st, 2nd, 3rd,
// 4th, 11th, 12th, 13th, 21st, 111th. Callers guarantee n >= 1.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
