package kernel

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// CurrencyCodeLength is the length of an ISO 4217 alphabetic currency code.
const CurrencyCodeLength = 3

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created via the NewMoney constructor to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// ErrCurrencyMismatch is returned when arithmetic is attempted on Money
// values carrying different currency codes.
var ErrCurrencyMismatch = errors.New("money currency mismatch")

// Money represents a monetary amount in minor units (e.g. cents) together
// with its ISO 4217 currency code. Money is an immutable value object;
// the zero value is invalid and will fail validation - use NewMoney to
// create instances.
//
// Example:
//
//	total, err := kernel.NewMoney(10000, "USD")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(total) // Output: 100.00 USD
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor units and a
// three-letter uppercase currency code. The amount must not be negative.
func NewMoney(amount int64, currency string) (Money, error) {
	money := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		money.setAmount(amount),
		money.setCurrency(currency),
	); err != nil {
		return Money{}, err
	}

	return money, nil
}

// Validate checks if the Money was properly constructed using the constructor.
// The zero value of Money is invalid and will fail this validation.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the monetary amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two Money values.
// Both operands must be constructed and must carry the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", ErrCurrencyMismatch)
	}
	return NewMoney(m.amount+other.amount, m.currency)
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String returns the amount formatted with two decimal places followed by
// the currency code, e.g. "100.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amount/100, m.amount%100, m.currency)
}

func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if len(currency) != CurrencyCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter currency code", currency))
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency",
				fmt.Errorf("%q is not an uppercase currency code", currency))
		}
	}
	m.currency = currency
	return nil
}
