package asteroids

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedNumber = errors.New("malformed number")

// ParseNumber reads a decimal number, ignoring surrounding whitespace.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrMalformedNumber, s)
	}
	return f, nil
}

// FormatFixed3 renders s with exactly three digits after the decimal point.
func FormatFixed3(s string) (string, error) {
	f, err := ParseNumber(s)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', 3, 64), nil
}
