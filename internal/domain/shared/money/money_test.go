package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesCurrency(t *testing.T) {
	m, err := New(1500, "brl")
	require.NoError(t, err)
	assert.Equal(t, "BRL", m.Currency)
	assert.Equal(t, int64(1500), m.Amount)

	_, err = New(1500, "reais")
	require.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestAddChecksCurrency(t *testing.T) {
	sum, err := Must(100, "BRL").Add(Must(250, "BRL"))
	require.NoError(t, err)
	assert.Equal(t, int64(350), sum.Amount)

	_, err = Must(100, "BRL").Add(Must(250, "USD"))
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestDivideRoundsHalfUp(t *testing.T) {
	tests := []struct {
		amount int64
		by     int64
		want   int64
	}{
		{300, 3, 100},
		{100, 3, 33},
		{200, 3, 67},
		{25001, 2, 12501},
		{0, 5, 0},
		{-100, 3, -33},
	}
	for _, tc := range tests {
		got, err := Money{Amount: tc.amount, Currency: "BRL"}.Divide(tc.by)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Amount, "%d / %d", tc.amount, tc.by)
	}

	_, err := Must(100, "BRL").Divide(0)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestMultiplyAndNeg(t *testing.T) {
	m := Must(100, "BRL")
	assert.Equal(t, int64(700), m.Multiply(7).Amount)
	assert.Equal(t, int64(-100), m.Neg().Amount)
	assert.True(t, m.Neg().IsNegative())
	assert.True(t, Zero("BRL").IsZero())
}
