package register

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating one field value.
type Result struct {
	Valid   bool
	Message string
}

// Field names as posted by the registration form.
const (
	FieldFirstName     = "firstName"
	FieldMiddleInitial = "middleInitial"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldAlias         = "userAlias"
	FieldPassword      = "password"
	FieldZip           = "zip"
	FieldPhone         = "phoneNum"
)

// FieldOrder lists every form field in display order.
var FieldOrder = []string{
	FieldFirstName,
	FieldMiddleInitial,
	FieldLastName,
	FieldEmail,
	FieldAlias,
	FieldPassword,
	FieldZip,
	FieldPhone,
}

var (
	lettersPattern = regexp.MustCompile(`^[A-Za-z]+$`)
	digitsPattern  = regexp.MustCompile(`^[0-9]+$`)
	nonDigits      = regexp.MustCompile(`\D`)

	// emailPattern is the browser forms email shape without its length
	// lookaheads, which validEmail checks separately.
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
)

const (
	maxEmailLength    = 254
	maxEmailLocalPart = 64
)

// isSpace matches the browser's \s class: Unicode white space plus the
// byte order mark.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// textLength counts UTF-16 code units, the unit browsers use for input
// lengths.
func textLength(value string) int {
	n := 0
	for _, r := range value {
		if size := utf16.RuneLen(r); size > 0 {
			n += size
		} else {
			n++
		}
	}
	return n
}

func validEmail(value string) bool {
	at := strings.IndexByte(value, '@')
	if len(value) > maxEmailLength || at < 1 || at > maxEmailLocalPart {
		return false
	}
	return emailPattern.MatchString(value)
}

// fieldRule pairs a validator tag list with the message for each tag.
// Tags run in order and the first failure wins.
type fieldRule struct {
	tags     string
	messages map[string]string
}

var rules = map[string]fieldRule{
	FieldFirstName: {
		tags: "required,letters",
		messages: map[string]string{
			"required": "First name is required.",
			"letters":  "First name may contain letters only.",
		},
	},
	FieldMiddleInitial: {
		tags: "omitempty,len=1,letters",
		messages: map[string]string{
			"len":     "Middle initial must be a single letter.",
			"letters": "Middle initial must be a single letter.",
		},
	},
	FieldLastName: {
		tags: "required,letters",
		messages: map[string]string{
			"required": "Last name is required.",
			"letters":  "Last name may contain letters only.",
		},
	},
	FieldEmail: {
		tags: "required,emailshape",
		messages: map[string]string{
			"required":   "Email is required.",
			"emailshape": "Enter a valid email address.",
		},
	},
	FieldAlias: {
		tags: "required,textmin=6,textmax=20,nospace",
		messages: map[string]string{
			"required": "Alias is required.",
			"textmin":  "Alias must be at least 6 characters.",
			"textmax":  "Alias cannot exceed 20 characters.",
			"nospace":  "Alias cannot contain spaces.",
		},
	},
	FieldPassword: {
		tags: "required,textmin=8",
		messages: map[string]string{
			"required": "Password is required.",
			"textmin":  "Password must be at least 8 characters.",
		},
	},
	FieldZip: {
		tags: "omitempty,len=5,digits",
		messages: map[string]string{
			"len":    "Zip must be exactly 5 digits.",
			"digits": "Zip must be exactly 5 digits.",
		},
	},
	FieldPhone: {
		tags: "omitempty,phone10",
		messages: map[string]string{
			"phone10": "Phone must be exactly 10 digits.",
		},
	},
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "letters", func(fl validator.FieldLevel) bool {
		return lettersPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), isSpace)
	})
	mustRegister(v, "textmin", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && textLength(fl.Field().String()) >= limit
	})
	mustRegister(v, "textmax", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && textLength(fl.Field().String()) <= limit
	})
	mustRegister(v, "emailshape", func(fl validator.FieldLevel) bool {
		return validEmail(fl.Field().String())
	})
	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return len(nonDigits.ReplaceAllString(fl.Field().String(), "")) == 10
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func check(field string, value string) Result {
	rule, ok := rules[field]
	if !ok {
		return Result{Valid: true}
	}
	err := validate.Var(value, rule.tags)
	if err == nil {
		return Result{Valid: true}
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if message, ok := rule.messages[fieldErrs[0].Tag()]; ok {
			return Result{Message: message}
		}
	}
	return Result{Message: err.Error()}
}

// ValidateFirstName requires one or more ASCII letters.
func ValidateFirstName(value string) Result { return check(FieldFirstName, value) }

// ValidateMiddleInitial accepts an empty value or a single ASCII letter.
func ValidateMiddleInitial(value string) Result { return check(FieldMiddleInitial, value) }

// ValidateLastName requires one or more ASCII letters.
func ValidateLastName(value string) Result { return check(FieldLastName, value) }

// ValidateEmail requires an email-shaped value.
func ValidateEmail(value string) Result { return check(FieldEmail, value) }

// ValidateAlias requires 6 to 20 UTF-16 code units with no whitespace.
func ValidateAlias(value string) Result { return check(FieldAlias, value) }

// ValidatePassword requires at least 8 characters.
func ValidatePassword(value string) Result { return check(FieldPassword, value) }

// ValidateZip accepts an empty value or exactly five digits.
func ValidateZip(value string) Result { return check(FieldZip, value) }

// ValidatePhone accepts an empty value or anything that has exactly ten
// digits once non-digits are removed.
func ValidatePhone(value string) Result { return check(FieldPhone, value) }

// FieldErrors maps field names to their first failing message.
type FieldErrors map[string]string

// Form holds the raw registration values.
type Form struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Email         string
	UserAlias     string
	Password      string
	Zip           string
	PhoneNum      string
}

// Value returns the raw value for field.
func (f Form) Value(field string) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldMiddleInitial:
		return f.MiddleInitial
	case FieldLastName:
		return f.LastName
	case FieldEmail:
		return f.Email
	case FieldAlias:
		return f.UserAlias
	case FieldPassword:
		return f.Password
	case FieldZip:
		return f.Zip
	case FieldPhone:
		return f.PhoneNum
	default:
		return ""
	}
}

// Validate runs every field rule and returns the failures. An empty
// result means the form may be submitted.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	for _, field := range FieldOrder {
		if result := check(field, f.Value(field)); !result.Valid {
			errs[field] = result.Message
		}
	}
	return errs
}

// IsZero reports whether every field is empty.
func (f Form) IsZero() bool {
	for _, field := range FieldOrder {
		if strings.TrimSpace(f.Value(field)) != "" {
			return false
		}
	}
	return true
}
