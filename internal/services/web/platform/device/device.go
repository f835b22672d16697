// Package device classifies browsers from their User-Agent header.
package device

import (
	"regexp"
	"strings"
)

// Class is a coarse device family.
type Class string

const (
	IOS     Class = "iOS"
	Android Class = "Android"
	Other   Class = "Desktop/Other"
)

var (
	iosPattern     = regexp.MustCompile(`iPad|iPhone|iPod`)
	androidPattern = regexp.MustCompile(`(?i)android`)
)

// Classify maps a User-Agent string to a device class. Old IE Mobile builds
// advertised iPhone tokens alongside MSStream, so those are not iOS.
func Classify(userAgent string) Class {
	switch {
	case iosPattern.MatchString(userAgent) && !strings.Contains(userAgent, "MSStream"):
		return IOS
	case androidPattern.MatchString(userAgent):
		return Android
	default:
		return Other
	}
}

// IsTouch reports whether the class is a phone or tablet family.
func (c Class) IsTouch() bool {
	return c == IOS || c == Android
}
