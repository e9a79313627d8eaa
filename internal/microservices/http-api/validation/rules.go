// Package validation holds the domain input rules shared by request binding,
// the services and the operator CLI.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/models"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 256
	MaxSlugLength     = 50
	MinScore          = 1
	MaxScore          = 10

	// ReservedUsername collides with the /users/me route.
	ReservedUsername = "me"
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func Username(username string) error {
	switch {
	case username == "":
		return apperr.Validation("username", "username is required")
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		return apperr.Validation("username", "username must be at most 150 characters")
	case strings.EqualFold(username, ReservedUsername):
		return apperr.Validation("username", `username "me" is reserved`)
	case !usernamePattern.MatchString(username):
		return apperr.Validation("username", "username may contain only letters, digits and @/./+/-/_")
	}
	return nil
}

func Email(email string) error {
	if email == "" {
		return apperr.Validation("email", "email is required")
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return apperr.Validation("email", "email must be at most 254 characters")
	}
	if err := engine().Var(email, "email"); err != nil {
		return apperr.Validation("email", "email must be a valid email address")
	}
	return nil
}

// UsernameEmailDistinct rejects accounts whose username equals their email,
// compared case-insensitively.
func UsernameEmailDistinct(username, email string) error {
	if strings.EqualFold(username, email) {
		return apperr.Validation("username", "username and email must differ")
	}
	return nil
}

// Account runs every username/email rule in order and returns the first
// failure.
func Account(username, email string) error {
	if err := Username(username); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return UsernameEmailDistinct(username, email)
}

func Role(role models.Role) error {
	if !role.Valid() {
		return apperr.Validation("role", "role must be one of: user, moderator, admin")
	}
	return nil
}

// Year rejects release years after the current calendar year of now.
func Year(year int, now time.Time) error {
	if year > now.Year() {
		return apperr.Validation("year", "year cannot be in the future")
	}
	return nil
}

func Score(score int) error {
	if score < MinScore || score > MaxScore {
		return apperr.Validation("score", "score must be between 1 and 10")
	}
	return nil
}

func Slug(slug string) error {
	switch {
	case slug == "":
		return apperr.Validation("slug", "slug is required")
	case len(slug) > MaxSlugLength:
		return apperr.Validation("slug", "slug must be at most 50 characters")
	case !slugPattern.MatchString(slug):
		return apperr.Validation("slug", "slug may contain only latin letters, digits, hyphens and underscores")
	}
	return nil
}

func Name(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation(field, field+" is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return apperr.Validation(field, field+" must be at most 256 characters")
	}
	return nil
}

func Text(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return apperr.Validation(field, field+" must not be blank")
	}
	return nil
}
