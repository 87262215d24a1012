package domain

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// IdentityNumberField is the external name of the identity number field.
const IdentityNumberField = "personal_id_nbr"

// IdentityNumberLength is the exact number of digits in an identity number.
const IdentityNumberLength = 11

// monthBandWidth is the width of one century band in the raw month field.
const monthBandWidth = 20

// centuryBands maps raw_month / 20 to the first year of the century.
//
//	raw month 01-12 -> 1900-1999
//	raw month 21-32 -> 2000-2099
//	raw month 41-52 -> 2100-2199
//	raw month 61-72 -> 2200-2299
//	raw month 81-92 -> 1800-1899
var centuryBands = map[int]int{
	0: 1900,
	1: 2000,
	2: 2100,
	3: 2200,
	4: 1800,
}

// DateOfBirth is a calendar date decoded from an identity number.
type DateOfBirth struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDateOfBirth returns a DateOfBirth after checking it is a real calendar date.
func NewDateOfBirth(year int, month time.Month, day int) (DateOfBirth, error) {
	if month < time.January || month > time.December {
		return DateOfBirth{}, NewFormatError(IdentityNumberField, fmt.Sprintf("month %d does not exist", month))
	}

	if day < 1 || day > daysIn(year, month) {
		return DateOfBirth{}, NewFormatError(IdentityNumberField,
			fmt.Sprintf("day %d does not exist in %s %d", day, month, year))
	}

	return DateOfBirth{Year: year, Month: month, Day: day}, nil
}

// Time returns the date as midnight UTC.
func (d DateOfBirth) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d DateOfBirth) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IdentityNumber is a validated 11-digit national identity number.
type IdentityNumber string

// ParseIdentityNumber validates s and returns it as an IdentityNumber.
func ParseIdentityNumber(s string) (IdentityNumber, error) {
	if _, err := DecodeIdentityNumber(s); err != nil {
		return "", err
	}

	return IdentityNumber(s), nil
}

// DateOfBirth decodes the birth date carried by the identity number.
func (n IdentityNumber) DateOfBirth() (DateOfBirth, error) {
	return DecodeIdentityNumber(string(n))
}

// LogValue masks all but the last four digits.
func (n IdentityNumber) LogValue() slog.Value {
	if len(n) <= 4 {
		return slog.StringValue("****")
	}

	return slog.StringValue("*******" + string(n[len(n)-4:]))
}

// DecodeIdentityNumber parses the birth date out of an identity number.
// The first six digits are YYMMDD where MM carries the century band
// (see centuryBands). The trailing five digits are not inspected.
func DecodeIdentityNumber(s string) (DateOfBirth, error) {
	if len(s) != IdentityNumberLength {
		return DateOfBirth{}, NewFormatError(IdentityNumberField,
			fmt.Sprintf("must consist of %d digits, got %d characters", IdentityNumberLength, len(s)))
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return DateOfBirth{}, NewFormatError(IdentityNumberField, "each character must be a digit")
		}
	}

	yy := twoDigits(s[0:2])
	rawMonth := twoDigits(s[2:4])
	day := twoDigits(s[4:6])

	century, ok := centuryBands[rawMonth/monthBandWidth]
	if !ok {
		return DateOfBirth{}, NewFormatError(IdentityNumberField,
			fmt.Sprintf("month field %02d has no century band", rawMonth))
	}

	return NewDateOfBirth(century+yy, time.Month(rawMonth%monthBandWidth), day)
}

// EncodeBirthDate returns the YYMMDD prefix an identity number for dob starts with.
func EncodeBirthDate(dob DateOfBirth) (string, error) {
	if _, err := NewDateOfBirth(dob.Year, dob.Month, dob.Day); err != nil {
		return "", err
	}

	century := dob.Year - dob.Year%100
	for band, start := range centuryBands {
		if start == century {
			month := int(dob.Month) + band*monthBandWidth
			return fmt.Sprintf("%02d%02d%02d", dob.Year%100, month, dob.Day), nil
		}
	}

	return "", NewFormatError(IdentityNumberField, fmt.Sprintf("year %d is outside the supported centuries", dob.Year))
}

// twoDigits converts a pre-validated two-digit string.
func twoDigits(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
