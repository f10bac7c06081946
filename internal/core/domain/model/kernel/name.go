package kernel

import (
	"errors"
	"strings"
	"unicode/utf8"

	"mes/internal/pkg/errs"
	"mes/internal/pkg/guard"
)

// MaxNameLength is the longest name, in characters, accepted for any named entity.
const MaxNameLength = 100

var ErrNameIsNotConstructed = errors.New("Name must be created via NewName constructor")

// Name is a non-empty display name of at most MaxNameLength characters.
// Surrounding whitespace is removed on construction.
type Name struct {
	value string
	guard guard.ConstructorGuard
}

// NewName validates and creates a Name. param is used in error messages.
func NewName(param, value string) (Name, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Name{}, errs.NewValueIsRequiredError(param)
	}
	if n := utf8.RuneCountInString(value); n > MaxNameLength {
		return Name{}, errs.NewValueIsOutOfRangeError(param+" length", n, 1, MaxNameLength)
	}

	return Name{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (n Name) String() string {
	return n.value
}

func (n Name) IsEqual(other Name) bool {
	return n.value == other.value
}

func (n Name) Validate() error {
	return n.guard.Validate(ErrNameIsNotConstructed)
}
