package commands

import (
	"context"

	"orderflow/internal/pkg/hash"
	"orderflow/internal/pkg/passphrase"
)

// ResetPasswordCommandHandler replaces a customer's credential with a newly
// generated passphrase. Only the bcrypt hash is persisted; the plaintext is
// handed to the registration notifier after the commit.
type ResetPasswordCommandHandler struct {
	uowFactory RegistrationUoWFactory
	notifier   RegistrationNotifier
}

// NewResetPasswordCommandHandler creates a handler for password resets.
// The notifier may be nil.
func NewResetPasswordCommandHandler(
	uowFactory RegistrationUoWFactory,
	notifier RegistrationNotifier,
) ResetPasswordCommandHandler {
	return ResetPasswordCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the password reset command.
// Unknown emails surface as errs.ObjectNotFoundError from the repository.
func (h *ResetPasswordCommandHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) error {
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
	recipient, err := customerRepo.GetByEmail(ctx, cmd.Email())
	if err != nil {
		return err
	}

	storefront, err := uow.ShopRepository().GetByCode(ctx, cmd.ShopCode())
	if err != nil {
		return err
	}

	if err = recipient.SetPasswordHash(hashed); err != nil {
		return err
	}

	if err = customerRepo.Update(ctx, recipient); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		h.notifier.NotifyPasswordReset(recipient, storefront, plaintext)
	}

	return nil
}
