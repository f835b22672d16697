package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer resolves catalog keys into page copy for the active language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T translates key with loc. Without a localizer, string keys are formatted
// as-is so tests and error pages still show something readable.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	keyString, ok := key.(string)
	switch {
	case !ok:
		return ""
	case len(args) == 0:
		return keyString
	default:
		return fmt.Sprintf(keyString, args...)
	}
}
