package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("alice@example.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not an email"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("longenough"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
}

func TestUsernameValidator(t *testing.T) {
	assert.NoError(t, UsernameValidator("alice.b-c@d+e_f"))
	assert.ErrorIs(t, UsernameValidator(""), ErrUsernameEmpty)
	assert.ErrorIs(t, UsernameValidator("has spaces"), ErrUsernameInvalid)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("14/03/2026")
	assert.ErrorIs(t, err, ErrDateInvalid)
}

func TestParseTimeOfDay(t *testing.T) {
	s, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", s)

	_, err = ParseTimeOfDay("9:30pm")
	assert.ErrorIs(t, err, ErrTimeInvalid)
}

func TestCategoryNameValidator(t *testing.T) {
	assert.NoError(t, CategoryNameValidator("Music"))
	assert.ErrorIs(t, CategoryNameValidator(""), ErrCategoryNameEmpty)
}
