package queries_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStalePaymentOrdersQuery_Valid(t *testing.T) {
	cutoff := time.Now().Add(-30 * time.Minute)
	query, err := queries.NewGetStalePaymentOrdersQuery(cutoff)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, cutoff, query.Cutoff())
}

func TestNewGetStalePaymentOrdersQuery_ZeroCutoff(t *testing.T) {
	_, err := queries.NewGetStalePaymentOrdersQuery(time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrCutoffIsRequired)
}

func TestGetStalePaymentOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetStalePaymentOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStalePaymentOrdersQueryIsNotConstructed)
}
