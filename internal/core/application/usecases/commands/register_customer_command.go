package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrRegisterCustomerCommandIsNotConstructed = errors.New(
		"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
	)
	ErrEmailIsInvalid   = errors.New("email must contain an @ sign")
	ErrShopCodeRequired = errors.New("shop code is required")
)

// RegisterCustomerCommand represents a request to register a new customer
// with a shop. A passphrase is generated for the customer during handling;
// the command itself never carries a credential.
//
// Example:
//
//	cmd, err := NewRegisterCustomerCommand(kernel.NewUUID(),
//	    "jane@example.com", "Jane", "Doe", "en", "SHOP10")
//	if err != nil {
//	    return fmt.Errorf("invalid registration data: %w", err)
//	}
//
//	handler := NewRegisterCustomerCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("registration failed: %w", err)
//	}
type RegisterCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	email      string
	firstName  string
	lastName   string
	locale     string
	shopCode   string

	guard guard.ConstructorGuard
}

// NewRegisterCustomerCommand creates a command to register a customer.
// Validates that the customer ID is valid, the email is plausible and the
// shop code is not empty. An empty locale defaults to "en".
func NewRegisterCustomerCommand(
	customerID kernel.UUID,
	email, firstName, lastName, locale, shopCode string,
) (RegisterCustomerCommand, error) {
	cmd := RegisterCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setEmail(email),
		cmd.setShopCode(shopCode),
	); err != nil {
		return RegisterCustomerCommand{}, err
	}

	cmd.firstName = firstName
	cmd.lastName = lastName
	cmd.locale = locale
	if cmd.locale == "" {
		cmd.locale = "en"
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterCustomerCommandIsNotConstructed if validation fails.
func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

// CustomerID returns the identifier for the new customer.
func (c RegisterCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Email returns the customer's email address.
func (c RegisterCustomerCommand) Email() string {
	return c.email
}

// FirstName returns the customer's first name.
func (c RegisterCustomerCommand) FirstName() string {
	return c.firstName
}

// LastName returns the customer's last name.
func (c RegisterCustomerCommand) LastName() string {
	return c.lastName
}

// Locale returns the customer's preferred notification locale.
func (c RegisterCustomerCommand) Locale() string {
	return c.locale
}

// ShopCode returns the code of the shop the customer registers with.
func (c RegisterCustomerCommand) ShopCode() string {
	return c.shopCode
}

func (c *RegisterCustomerCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *RegisterCustomerCommand) setEmail(email string) error {
	if !strings.Contains(email, "@") {
		return ErrEmailIsInvalid
	}

	c.email = email
	return nil
}

func (c *RegisterCustomerCommand) setShopCode(shopCode string) error {
	if shopCode == "" {
		return ErrShopCodeRequired
	}

	c.shopCode = shopCode
	return nil
}
