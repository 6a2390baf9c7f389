package core

// Itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func Itoa(n int) string {
	if n < 0 {
		return "-" + formatUint(uint64(-n))
	}
	return formatUint(uint64(n))
}

// Utoa converts an unsigned integer to a string
func Utoa(n uint32) string {
	return formatUint(uint64(n))
}

// Ftoa formats v with a fixed number of decimals, rounding half away from zero.
// Ftoa(1.005, 2) is subject to the usual binary rounding of the input.
func Ftoa(v float64, decimals int) string {
	negative := v < 0
	if negative {
		v = -v
	}

	scale := uint64(1)
	for i := 0; i < decimals; i++ {
		scale *= 10
	}

	n := uint64(v*float64(scale) + 0.5)
	s := formatUint(n / scale)

	if decimals > 0 {
		frac := formatUint(n % scale)
		for len(frac) < decimals {
			frac = "0" + frac
		}
		s += "." + frac
	}

	if negative && n != 0 {
		s = "-" + s
	}
	return s
}

// formatUint builds the decimal string right to left
func formatUint(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
