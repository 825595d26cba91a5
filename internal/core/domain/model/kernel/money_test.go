package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		wantErr  bool
	}{
		{
			name:     "valid money",
			amount:   10000,
			currency: "USD",
			wantErr:  false,
		},
		{
			name:     "zero amount is valid",
			amount:   0,
			currency: "EUR",
			wantErr:  false,
		},
		{
			name:     "negative amount",
			amount:   -1,
			currency: "USD",
			wantErr:  true,
		},
		{
			name:     "currency too short",
			amount:   100,
			currency: "US",
			wantErr:  true,
		},
		{
			name:     "currency not uppercase",
			amount:   100,
			currency: "usd",
			wantErr:  true,
		},
		{
			name:     "empty currency",
			amount:   100,
			currency: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := kernel.NewMoney(tt.amount, tt.currency)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.amount, money.Amount())
			assert.Equal(t, tt.currency, money.Currency())
			require.NoError(t, money.Validate())
		})
	}
}

func TestMoney_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var money kernel.Money
		require.Error(t, money.Validate())
		require.ErrorIs(t, money.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("constructed value is valid", func(t *testing.T) {
		money, err := kernel.NewMoney(500, "USD")
		require.NoError(t, err)
		require.NoError(t, money.Validate())
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		a, _ := kernel.NewMoney(10000, "USD")
		b, _ := kernel.NewMoney(2550, "USD")

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, int64(12550), sum.Amount())
		assert.Equal(t, "USD", sum.Currency())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		a, _ := kernel.NewMoney(10000, "USD")
		b, _ := kernel.NewMoney(2550, "EUR")

		_, err := a.Add(b)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed operand", func(t *testing.T) {
		a, _ := kernel.NewMoney(10000, "USD")
		var b kernel.Money

		_, err := a.Add(b)

		require.Error(t, err)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoney(10000, "USD")
	b, _ := kernel.NewMoney(10000, "USD")
	c, _ := kernel.NewMoney(10000, "EUR")
	d, _ := kernel.NewMoney(9999, "USD")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(d))
}

func TestMoney_String(t *testing.T) {
	money, err := kernel.NewMoney(10050, "USD")
	require.NoError(t, err)
	assert.Equal(t, "100.50 USD", money.String())
}
