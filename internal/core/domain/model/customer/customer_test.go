package customer_test

import (
	"testing"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer without credential", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := customer.NewCustomer(id, "jane@example.com", "Jane", "Doe", "en")

		require.NoError(t, err)
		assert.Equal(t, id, c.ID())
		assert.Equal(t, "jane@example.com", c.Email())
		assert.Equal(t, "Jane", c.FirstName())
		assert.Equal(t, "Doe", c.LastName())
		assert.Equal(t, "en", c.Locale())
		assert.False(t, c.HasPassword())
		require.NoError(t, c.Validate())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewUUID(), "", "Jane", "Doe", "en")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects implausible email", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewUUID(), "not-an-email", "Jane", "Doe", "en")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty locale", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.NewUUID(), "jane@example.com", "Jane", "Doe", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCustomer_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var c customer.Customer
		require.ErrorIs(t, c.Validate(), customer.ErrCustomerIsNotConstructed)
	})

	t.Run("nil is invalid", func(t *testing.T) {
		var c *customer.Customer
		require.ErrorIs(t, c.Validate(), customer.ErrCustomerIsNotConstructed)
	})
}

func TestCustomer_SetPasswordHash(t *testing.T) {
	c, err := customer.NewCustomer(kernel.NewUUID(), "jane@example.com", "Jane", "Doe", "en")
	require.NoError(t, err)

	t.Run("stores hash", func(t *testing.T) {
		require.NoError(t, c.SetPasswordHash("$2a$10$abcdef"))
		assert.True(t, c.HasPassword())
		assert.Equal(t, "$2a$10$abcdef", c.PasswordHash())
	})

	t.Run("rejects empty hash", func(t *testing.T) {
		err := c.SetPasswordHash("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreCustomer(t *testing.T) {
	c, err := customer.RestoreCustomer(
		kernel.NewUUID(), "jane@example.com", "Jane", "Doe", "de", "$2a$10$abcdef")

	require.NoError(t, err)
	assert.True(t, c.HasPassword())
	assert.Equal(t, "de", c.Locale())
}
