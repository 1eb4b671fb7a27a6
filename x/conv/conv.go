// Package conv holds allocation-light integer/string conversions shared by
// the MCU formatter and the console parser. The stdlib strconv works under
// TinyGo too, but these cover the few cases we need without dragging in its
// float and quoting machinery.
package conv

// Utoa renders v in base 10.
func Utoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Itoa renders v in base 10 with a leading minus for negatives.
func Itoa(v int64) string {
	if v < 0 {
		return "-" + Utoa(uint64(-v))
	}
	return Utoa(uint64(v))
}

// Atoi parses an optionally signed base-10 integer. The whole string must be
// numeric; ok is false otherwise or on empty input.
func Atoi(s string) (v int64, ok bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v, true
}
