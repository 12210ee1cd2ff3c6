package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-facing labels
var FieldLabels = map[string]string{
	"email":                   "Email",
	"password":                "Password",
	"current_password":        "Current password",
	"new_password":            "New password",
	"full_name":               "Full name",
	"graduation_year":         "Graduation year",
	"linkedin_url":            "LinkedIn URL",
	"personal_website":        "Personal website",
	"current_company":         "Current company",
	"current_role":            "Current role",
	"bio":                     "Bio",
	"majors":                  "Majors",
	"company_name":            "Company",
	"requested_id":            "Recipient",
	"message":                 "Message",
	"round_name":              "Round name",
	"difficulty":              "Difficulty",
	"tip":                     "Tip",
	"title":                   "Title",
	"start":                   "Start date",
	"end":                     "End date",
	"type":                    "Employment type",
	"season":                  "Season",
	"role":                    "Role",
	"date":                    "Date",
	"location":                "Location",
	"description":             "Description",
	"open_to_coffee_chats":    "Open to coffee chats",
	"open_to_mentorship":      "Open to mentorship",
	"available_for_referrals": "Available for referrals",
}

// FormatValidationErrors converts binding and validation errors to readable messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, formatSingleError(e))
		}
		return messages
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s: must be a %s", getFieldLabel(typeErr.Field), typeErr.Type.String())}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []string{"Request body is not valid JSON"}
	}

	return []string{err.Error()}
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", label)
	case "url", "http_url":
		return fmt.Sprintf("%s: must be a valid http(s) URL", label)
	case "valid_name":
		return fmt.Sprintf("%s: may only contain letters, spaces and common punctuation", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	case "graduation_year":
		return fmt.Sprintf("%s: must be between %d and %d years from now", label, minGraduationYear, 8)
	case "bcrypt_len":
		return fmt.Sprintf("%s: must be at most %d bytes", label, maxBcryptBytes)
	case "gtefield":
		return fmt.Sprintf("%s: must not be before %s", label, getFieldLabel(param))
	case "dive":
		return fmt.Sprintf("%s: contains an invalid entry", label)
	default:
		return fmt.Sprintf("%s: failed %s validation", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatSnakeCase(fieldName)
}

// formatSnakeCase turns "foo_bar" into "Foo bar"
func formatSnakeCase(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
