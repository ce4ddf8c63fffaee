package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// MaxAddressLength bounds the textual form of an identity.
const MaxAddressLength = 128

// ErrAddressIsNotConstructed indicates a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is an authenticated caller identity: a company, a driver, or the
// owner of an account. Addresses are opaque; two addresses are the same
// identity only if their textual forms are identical.
type Address struct {
	value string
	guard guard.ConstructorGuard
}

// NewAddress validates and wraps an identity. Surrounding whitespace is
// trimmed; inner whitespace and control characters are rejected.
func NewAddress(value string) (Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if len(value) > MaxAddressLength {
		return Address{}, errs.NewValueIsOutOfRangeError("address length", len(value), 1, MaxAddressLength)
	}
	if strings.IndexFunc(value, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return Address{}, errs.NewValueIsInvalidErrorWithCause("address", errors.New("contains whitespace"))
	}

	return Address{value: value, guard: guard.NewConstructorGuard()}, nil
}

// MustNewAddress is NewAddress for literals known to be valid; it panics otherwise.
func MustNewAddress(value string) Address {
	a, err := NewAddress(value)
	if err != nil {
		panic(fmt.Sprintf("kernel: invalid address %q: %v", value, err))
	}
	return a
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) String() string {
	return a.value
}

// IsEqual reports whether both values name the same identity. Zero values
// are never equal to anything.
func (a Address) IsEqual(other Address) bool {
	return a.Validate() == nil && other.Validate() == nil && a.value == other.value
}
