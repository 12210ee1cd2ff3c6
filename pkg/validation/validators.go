package validation

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	minGraduationYear = 1950
	maxBcryptBytes    = 72
)

// Letters, digits, spaces and common punctuation: . ' - / & ( ) ,
var nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

var (
	shared     *validator.Validate
	sharedOnce sync.Once
)

// New returns the process-wide validator with custom tags registered and
// json names used in error fields.
func New() *validator.Validate {
	sharedOnce.Do(func() {
		shared = validator.New()
		Configure(shared)
	})
	return shared
}

// Configure registers tags and json field naming on v. The gin binding
// engine is configured through this as well.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("graduation_year", GraduationYear)
	_ = v.RegisterValidation("http_url", HTTPURL)
	_ = v.RegisterValidation("bcrypt_len", BcryptLength)
}

// BcryptLength rejects strings longer than bcrypt's 72 byte input limit.
func BcryptLength(fl validator.FieldLevel) bool {
	val, ok := stringValue(fl)
	if !ok {
		return true
	}
	return len(val) <= maxBcryptBytes
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val, ok := stringValue(fl)
	if !ok || val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val, ok := stringValue(fl)
	if !ok {
		return true
	}
	for _, r := range val {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// GraduationYear accepts years from 1950 up to eight years ahead, which
// covers incoming students.
func GraduationYear(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	year := field.Int()
	if year == 0 {
		return true
	}
	return year >= minGraduationYear && year <= int64(time.Now().Year()+8)
}

// HTTPURL accepts an empty string or an absolute http(s) URL.
func HTTPURL(fl validator.FieldLevel) bool {
	val, ok := stringValue(fl)
	if !ok || val == "" {
		return true
	}
	u, err := url.Parse(val)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func stringValue(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return "", false
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return "", false
	}
	return field.String(), true
}
