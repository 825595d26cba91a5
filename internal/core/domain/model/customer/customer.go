// Package customer provides the Customer aggregate: a registered person who
// places orders and receives lifecycle notifications. The aggregate owns the
// credential state (password hash) that the registration flow manages.
package customer

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through the NewCustomer or RestoreCustomer factory methods.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer represents a registered person.
//
// Customer follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a plausible, non-empty email address
//   - Only the password hash is ever stored; plaintext secrets never touch
//     the aggregate
type Customer struct {
	// id is the unique identifier for the customer
	id kernel.UUID

	// email is the customer's address, used as the notification recipient
	email string

	// firstName and lastName identify the person in correspondence
	firstName string
	lastName  string

	// locale is the customer's preferred locale for notifications (e.g. "en")
	locale string

	// passwordHash is the stored credential; empty until registration completes
	passwordHash string

	// isConstructed ensures the customer was created via a constructor
	isConstructed bool
}

// NewCustomer creates a new Customer without a stored credential.
// The registration flow is responsible for generating and hashing the
// initial password before the customer is persisted.
func NewCustomer(id kernel.UUID, email, firstName, lastName, locale string) (*Customer, error) {
	c := &Customer{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setEmail(email),
		c.setLocale(locale),
	); err != nil {
		return nil, err
	}

	c.firstName = firstName
	c.lastName = lastName
	return c, nil
}

// RestoreCustomer reconstructs a Customer from persistence, including the
// stored password hash.
func RestoreCustomer(id kernel.UUID, email, firstName, lastName, locale, passwordHash string) (*Customer, error) {
	c, err := NewCustomer(id, email, firstName, lastName, locale)
	if err != nil {
		return nil, err
	}
	c.passwordHash = passwordHash
	return c, nil
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Email returns the customer's email address.
func (c *Customer) Email() string {
	return c.email
}

// FirstName returns the customer's first name.
func (c *Customer) FirstName() string {
	return c.firstName
}

// LastName returns the customer's last name.
func (c *Customer) LastName() string {
	return c.lastName
}

// Locale returns the customer's preferred notification locale.
func (c *Customer) Locale() string {
	return c.locale
}

// PasswordHash returns the stored credential hash.
// Empty when no password has been set yet.
func (c *Customer) PasswordHash() string {
	return c.passwordHash
}

// HasPassword reports whether a credential has been stored.
func (c *Customer) HasPassword() bool {
	return c.passwordHash != ""
}

// SetPasswordHash stores a new credential hash.
// Callers must hash the secret before invoking this; the aggregate rejects
// empty values but cannot distinguish plaintext from a hash.
func (c *Customer) SetPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	c.passwordHash = hash
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	c.email = email
	return nil
}

func (c *Customer) setLocale(locale string) error {
	if locale == "" {
		return errs.NewValueIsRequiredError("locale")
	}
	c.locale = locale
	return nil
}
