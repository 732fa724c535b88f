package domain

import (
	"strings"
)

// ISBN is a validated ISBN-10 or ISBN-13. The original formatting (hyphens,
// spaces) is preserved; validation runs against the cleaned digit string.
// The zero value is invalid; use NewISBN to construct one.
type ISBN struct {
	value string
}

// NewISBN validates the raw string as ISBN-10 or ISBN-13 and returns the ISBN.
// Hyphens and spaces are ignored for validation but kept in the stored value.
func NewISBN(raw string) (ISBN, error) {
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(raw)

	switch len(cleaned) {
	case 10:
		if !validISBN10(cleaned) {
			return ISBN{}, ErrInvalidISBN
		}
	case 13:
		if !validISBN13(cleaned) {
			return ISBN{}, ErrInvalidISBN
		}
	default:
		return ISBN{}, ErrInvalidISBN
	}

	return ISBN{value: raw}, nil
}

// String returns the ISBN as originally formatted.
func (i ISBN) String() string {
	return i.value
}

// Equals compares two ISBNs by their stored values.
func (i ISBN) Equals(other ISBN) bool {
	return i.value == other.value
}

// IsZero reports whether the ISBN is the invalid zero value.
func (i ISBN) IsZero() bool {
	return i.value == ""
}

// validISBN10 checks the weighted mod-11 checksum: digits 1..9 weighted 10
// down to 2, plus the check character ('X' counts as 10), must be 0 mod 11.
func validISBN10(isbn string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		digit := isbn[i]
		if digit < '0' || digit > '9' {
			return false
		}
		sum += int(digit-'0') * (10 - i)
	}

	last := isbn[9]
	switch {
	case last == 'X':
		sum += 10
	case last >= '0' && last <= '9':
		sum += int(last - '0')
	default:
		return false
	}

	return sum%11 == 0
}

// validISBN13 checks the alternating 1/3 weighted checksum over the first 12
// digits; the check digit must equal (10 - sum mod 10) mod 10.
func validISBN13(isbn string) bool {
	sum := 0
	for i := 0; i < 12; i++ {
		digit := isbn[i]
		if digit < '0' || digit > '9' {
			return false
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(digit-'0') * weight
	}

	check := isbn[12]
	if check < '0' || check > '9' {
		return false
	}

	return int(check-'0') == (10-sum%10)%10
}
