package register

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf16"
)

var nonLetters = regexp.MustCompile(`[^A-Za-z]`)

// FilterName keeps ASCII letters only.
func FilterName(value string) string {
	return nonLetters.ReplaceAllString(value, "")
}

// FilterMiddleInitial keeps the first ASCII letter.
func FilterMiddleInitial(value string) string {
	return truncate(FilterName(value), 1)
}

// FilterAlias removes whitespace, upper-cases, and caps the length at 20.
func FilterAlias(value string) string {
	stripped := strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, value)
	return truncate(strings.ToUpper(stripped), 20)
}

// FilterZip keeps up to five digits.
func FilterZip(value string) string {
	return truncate(nonDigits.ReplaceAllString(value, ""), 5)
}

// FilterPhone keeps up to ten digits and formats a complete number as
// NNN-NNN-NNNN. Partial input stays as the bare digit run.
func FilterPhone(value string) string {
	digits := truncate(nonDigits.ReplaceAllString(value, ""), 10)
	if len(digits) != 10 {
		return digits
	}
	return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
}

// PhoneDigits strips everything but digits.
func PhoneDigits(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// truncate keeps at most limit UTF-16 code units. A character that would
// straddle the limit is dropped whole.
func truncate(value string, limit int) string {
	n := 0
	for i, r := range value {
		size := utf16.RuneLen(r)
		if size < 1 {
			size = 1
		}
		if n+size > limit {
			return value[:i]
		}
		n += size
	}
	return value
}

// formFromValues reads posted values and applies the same live filters
// the browser applies while typing.
func formFromValues(values url.Values) Form {
	return Form{
		FirstName:     FilterName(values.Get(FieldFirstName)),
		MiddleInitial: FilterMiddleInitial(values.Get(FieldMiddleInitial)),
		LastName:      FilterName(values.Get(FieldLastName)),
		Email:         strings.TrimSpace(values.Get(FieldEmail)),
		UserAlias:     FilterAlias(values.Get(FieldAlias)),
		Password:      values.Get(FieldPassword),
		Zip:           FilterZip(values.Get(FieldZip)),
		PhoneNum:      FilterPhone(values.Get(FieldPhone)),
	}
}
