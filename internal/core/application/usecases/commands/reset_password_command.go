package commands

import (
	"errors"
	"strings"

	"orderflow/internal/pkg/guard"
)

var ErrResetPasswordCommandIsNotConstructed = errors.New(
	"ResetPasswordCommand must be created via NewResetPasswordCommand constructor",
)

// ResetPasswordCommand represents a request to replace a customer's password
// with a freshly generated one. The customer is addressed by email; the shop
// code selects the storefront context for the notification.
type ResetPasswordCommand struct { //nolint:recvcheck //using for validation
	email    string
	shopCode string

	guard guard.ConstructorGuard
}

// NewResetPasswordCommand creates a command to reset a customer's password.
func NewResetPasswordCommand(email, shopCode string) (ResetPasswordCommand, error) {
	cmd := ResetPasswordCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setShopCode(shopCode),
	); err != nil {
		return ResetPasswordCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrResetPasswordCommandIsNotConstructed if validation fails.
func (c ResetPasswordCommand) Validate() error {
	return c.guard.Validate(ErrResetPasswordCommandIsNotConstructed)
}

// Email returns the email of the customer whose password is reset.
func (c ResetPasswordCommand) Email() string {
	return c.email
}

// ShopCode returns the code of the shop the reset was requested from.
func (c ResetPasswordCommand) ShopCode() string {
	return c.shopCode
}

func (c *ResetPasswordCommand) setEmail(email string) error {
	if !strings.Contains(email, "@") {
		return ErrEmailIsInvalid
	}

	c.email = email
	return nil
}

func (c *ResetPasswordCommand) setShopCode(shopCode string) error {
	if shopCode == "" {
		return ErrShopCodeRequired
	}

	c.shopCode = shopCode
	return nil
}
