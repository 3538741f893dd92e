package aamva

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinels stored in place of a value that failed normalization
const (
	INVALID_DATE   = "Invalid Date"
	INVALID_HEIGHT = "Invalid Height"
)

// F8N is the fixed width of an AAMVA date
const F8N = 8

const CM_PER_INCH = 2.54

// parseUnsigned reads a decimal integer that may carry one leading '+'
func parseUnsigned(s string, bitSize int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, bitSize)
}

// isPlainDecimal rejects the Go literal forms ParseFloat accepts on top of
// plain decimal text: digit separators and hex mantissas.
func isPlainDecimal(s string) bool {
	if strings.Contains(s, "_") {
		return false
	}
	unsigned := strings.TrimLeft(s, "+-")
	if len(s)-len(unsigned) > 1 {
		return false
	}
	return !strings.HasPrefix(unsigned, "0x") && !strings.HasPrefix(unsigned, "0X")
}

type civilDate struct {
	year, month, day uint64
}

func (d civilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// parseUSDate reads an MMDDCCYY date. Month, day and year ranges are not
// checked.
func parseUSDate(s string) (civilDate, error) {
	if len(s) != F8N {
		return civilDate{}, fmt.Errorf("invalid date length: %d", len(s))
	}

	month, err := parseUnsigned(s[0:2], 32)
	if err != nil {
		return civilDate{}, fmt.Errorf("failed to parse month: %w", err)
	}

	day, err := parseUnsigned(s[2:4], 32)
	if err != nil {
		return civilDate{}, fmt.Errorf("failed to parse day: %w", err)
	}

	year, err := parseUnsigned(s[4:8], 32)
	if err != nil {
		return civilDate{}, fmt.Errorf("failed to parse year: %w", err)
	}

	return civilDate{year: year, month: month, day: day}, nil
}

// StandardizeDate converts an AAMVA date to YYYY-MM-DD, or INVALID_DATE.
// Every eight digit value is read in the US MMDDCCYY layout; Canadian
// CCYYMMDD payloads share the width and are not told apart.
func StandardizeDate(value string) string {
	date, err := parseUSDate(value)
	if err != nil {
		return INVALID_DATE
	}
	return date.String()
}

// parseHeightInches returns the height in inches for a value ending in
// CM or IN.
func parseHeightInches(s string) (float64, error) {
	s = strings.TrimSpace(s)

	metric := strings.HasSuffix(s, "CM")
	if !metric && !strings.HasSuffix(s, "IN") {
		return 0, fmt.Errorf("unknown height unit in %q", s)
	}

	number := strings.TrimSpace(s[:len(s)-2])
	if !isPlainDecimal(number) {
		return 0, fmt.Errorf("height %q is not a plain decimal", number)
	}
	amount, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse height %q: %w", number, err)
	}
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return 0, fmt.Errorf("height %q is not finite", number)
	}

	if metric {
		return amount / CM_PER_INCH, nil
	}
	return amount, nil
}

// ConvertHeight renders a metric or imperial height as inches with two
// decimals, without the unit. Anything else yields INVALID_HEIGHT.
func ConvertHeight(value string) string {
	inches, err := parseHeightInches(value)
	if err != nil {
		return INVALID_HEIGHT
	}
	return strconv.FormatFloat(inches, 'f', 2, 64)
}

// DecodeGender maps the DBC code to a Gender. Unparseable and unknown
// codes are Unspecified.
func DecodeGender(value string) Gender {
	code, err := parseUnsigned(value, 8)
	if err != nil {
		return Unspecified
	}
	return genderFromCode(int(code))
}
