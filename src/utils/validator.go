package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance; it caches struct metadata.
var Validate = validator.New()

// IsEmail reports whether s is a well-formed email address.
func IsEmail(s string) bool {
	return Validate.Var(strings.TrimSpace(s), "required,email") == nil
}
