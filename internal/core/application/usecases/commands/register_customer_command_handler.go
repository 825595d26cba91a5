package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/hash"
	"orderflow/internal/pkg/passphrase"
)

// ErrCustomerAlreadyRegistered indicates the email is already taken.
var ErrCustomerAlreadyRegistered = errors.New("customer is already registered")

// RegisterCustomerCommandHandler handles new customer registration.
//
// A random passphrase is generated for the customer; only its bcrypt hash is
// persisted. The plaintext is handed to the registration notifier after the
// commit so the welcome message can include it, and is never stored.
type RegisterCustomerCommandHandler struct {
	uowFactory RegistrationUoWFactory
	notifier   RegistrationNotifier
}

// NewRegisterCustomerCommandHandler creates a handler for customer registration.
// The notifier may be nil.
func NewRegisterCustomerCommandHandler(
	uowFactory RegistrationUoWFactory,
	notifier RegistrationNotifier,
) RegisterCustomerCommandHandler {
	return RegisterCustomerCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the registration command.
// Returns ErrCustomerAlreadyRegistered when the email is already in use.
func (h *RegisterCustomerCommandHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	plaintext, err := passphrase.Generate(passphrase.DefaultLength)
	if err != nil {
		return err
	}

	hashed, err := hash.Password(plaintext)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	_, err = customerRepo.GetByEmail(ctx, cmd.Email())
	switch {
	case err == nil:
		return ErrCustomerAlreadyRegistered
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	storefront, err := uow.ShopRepository().GetByCode(ctx, cmd.ShopCode())
	if err != nil {
		return err
	}

	recipient, err := customer.NewCustomer(
		cmd.CustomerID(), cmd.Email(), cmd.FirstName(), cmd.LastName(), cmd.Locale())
	if err != nil {
		return err
	}

	if err = recipient.SetPasswordHash(hashed); err != nil {
		return err
	}

	if err = customerRepo.Add(ctx, recipient); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		h.notifier.NotifyRegistration(recipient, storefront, plaintext)
	}

	return nil
}
