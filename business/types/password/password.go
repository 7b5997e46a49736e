// Package password represents a password in the system.
package password

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Bounds bcrypt can hash without truncating input.
const (
	minLength = 6
	maxLength = 72
)

// Password represents a password in the system.
type Password struct {
	value string
}

// String returns the value of the password.
func (p Password) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText hides the value from logs.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("********"), nil
}

// Parse parses the string value and returns a password if the value complies
// with the rules for a password.
func Parse(value string) (Password, error) {
	if utf8.RuneCountInString(value) < minLength {
		return Password{}, fmt.Errorf("password must be at least %d characters", minLength)
	}

	if len(value) > maxLength {
		return Password{}, errors.New("password is too long")
	}

	return Password{value}, nil
}

// ParseConfirm parses the password and checks it matches its confirmation.
func ParseConfirm(value string, confirm string) (Password, error) {
	p, err := Parse(value)
	if err != nil {
		return Password{}, err
	}

	if value != confirm {
		return Password{}, errors.New("passwords do not match")
	}

	return p, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function panics.
func MustParse(value string) Password {
	p, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return p
}
