package highscore

import (
	"errors"
	"fmt"
)

// ErrInvalidName is returned for names that are not exactly three letters.
var ErrInvalidName = errors.New("highscore: name must be exactly 3 letters")

// ValidateName checks that text is exactly three ASCII letters and returns
// them uppercased. Surrounding whitespace counts as part of the name; callers
// reading from a line-based input trim it first.
func ValidateName(text string) ([NameLength]byte, error) {
	var name [NameLength]byte

	if len(text) != NameLength {
		return name, fmt.Errorf("%w: got %q", ErrInvalidName, text)
	}
	for i := 0; i < NameLength; i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z':
			name[i] = c - ('a' - 'A')
		case c >= 'A' && c <= 'Z':
			name[i] = c
		default:
			return [NameLength]byte{}, fmt.Errorf("%w: got %q", ErrInvalidName, text)
		}
	}
	return name, nil
}

// MustName is like ValidateName but panics on invalid input.
// Intended for tests and fixtures.
func MustName(text string) [NameLength]byte {
	name, err := ValidateName(text)
	if err != nil {
		panic(err)
	}
	return name
}
