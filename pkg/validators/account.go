// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
	"regexp"
)

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")

	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")

	ErrUsernameEmpty   = errors.New("no username provided")
	ErrUsernameTooLong = errors.New("username is too long")
	ErrUsernameInvalid = errors.New("username may only contain letters, digits and @.+-_")

	ErrNameEmpty   = errors.New("first and last name are required")
	ErrNameTooLong = errors.New("name is too long")
)

// Letters, digits and @/./+/-/_ only
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return ErrEmailInvalid
	}

	return nil
}

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	return nil
}

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) > 150 {
		return ErrUsernameTooLong
	}

	if !usernamePattern.MatchString(u) {
		return ErrUsernameInvalid
	}

	return nil
}

func PersonNameValidator(first, last string) error {
	if first == "" || last == "" {
		return ErrNameEmpty
	}

	if len(first) > 100 || len(last) > 100 {
		return ErrNameTooLong
	}

	return nil
}
