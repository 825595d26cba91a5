package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderQuery("ORD-1001")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "ORD-1001", query.OrderNumber())
}

func TestNewGetOrderQuery_EmptyNumber(t *testing.T) {
	_, err := queries.NewGetOrderQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrOrderNumberIsRequired)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
