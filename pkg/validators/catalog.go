package validators

import (
	"errors"
	"time"
)

var (
	ErrEventNameEmpty    = errors.New("event name is required")
	ErrEventNameTooLong  = errors.New("event name may be at most 200 characters")
	ErrLocationTooLong   = errors.New("location may be at most 200 characters")
	ErrDateInvalid       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrTimeInvalid       = errors.New("invalid time, expected HH:MM")
	ErrCategoryRequired  = errors.New("a category is required")
	ErrCategoryNameEmpty = errors.New("category name is required")
	ErrCategoryNameLong  = errors.New("category name may be at most 100 characters")
)

func EventNameValidator(name string) error {
	if name == "" {
		return ErrEventNameEmpty
	}

	if len(name) > 200 {
		return ErrEventNameTooLong
	}

	return nil
}

func LocationValidator(loc string) error {
	if len(loc) > 200 {
		return ErrLocationTooLong
	}

	return nil
}

// ParseDate parses a calendar day in YYYY-MM-DD form, midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}

	return t.UTC(), nil
}

// ParseTimeOfDay validates an HH:MM wall-clock time and returns it in
// normalized form.
func ParseTimeOfDay(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", ErrTimeInvalid
	}

	return t.Format("15:04"), nil
}

func CategoryNameValidator(name string) error {
	if name == "" {
		return ErrCategoryNameEmpty
	}

	if len(name) > 100 {
		return ErrCategoryNameLong
	}

	return nil
}
