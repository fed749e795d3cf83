package validation

import (
	"regexp"
	"strings"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
)

// Only institutional student addresses may register.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9]+@alumnos\.ubiobio\.cl$`)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// SignupInput is the payload accepted when registering a new account.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateSignupInput checks a registration payload and returns the first
// failure found, or an empty string if the payload is valid.
func ValidateSignupInput(in *SignupInput) string {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return "username is required"
	}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return "username must be between 3 and 30 characters"
	}
	if !usernamePattern.MatchString(username) {
		return "username may only contain letters, numbers, underscores and dots"
	}
	if msg := ValidateEmail(in.Email); msg != "" {
		return msg
	}
	if len(in.Password) < minPasswordLength {
		return "password must be at least 8 characters"
	}
	return ""
}

// ValidateEmail checks that an email belongs to the institutional domain.
func ValidateEmail(email string) string {
	if email == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(email) {
		return "email must be an institutional address (@alumnos.ubiobio.cl)"
	}
	return ""
}
