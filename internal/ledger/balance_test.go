package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestBalanceFold(t *testing.T) {
	entries := []Entry{
		{Type: TypeCredit, Amount: d("270.00")},
		{Type: TypeDebit, Amount: d("100.00")},
		{Type: TypeDebit, Amount: d("70.50")},
		{Type: TypeCredit, Amount: d("0.01")},
	}
	got := Balance(d("50.00"), entries)
	require.True(t, got.Equal(d("-49.51")), "got %s", got)
}

func TestBalanceOrderIndependent(t *testing.T) {
	a := []Entry{
		{Type: TypeDebit, Amount: d("0.10")},
		{Type: TypeDebit, Amount: d("0.20")},
		{Type: TypeCredit, Amount: d("0.30")},
	}
	b := []Entry{a[2], a[0], a[1]}
	require.True(t, Balance(decimal.Zero, a).Equal(Balance(decimal.Zero, b)))
}

func TestBalanceNoPennyDrift(t *testing.T) {
	// 10000 entries of 0.01 must sum exactly; binary floats would drift here.
	entries := make([]Entry, 0, 10000)
	for i := 0; i < 10000; i++ {
		entries = append(entries, Entry{Type: TypeDebit, Amount: d("0.01")})
	}
	got := Balance(decimal.Zero, entries)
	require.True(t, got.Equal(d("100.00")), "got %s", got)
}

func TestBalanceIdempotentRead(t *testing.T) {
	entries := []Entry{
		{Type: TypeDebit, Amount: d("12.34")},
		{Type: TypeCredit, Amount: d("5.67")},
	}
	first := Balance(d("1.00"), entries)
	second := Balance(d("1.00"), entries)
	require.True(t, first.Equal(second))
}

func TestSplit(t *testing.T) {
	theyOwe, youOwe := Split(d("42.00"))
	require.True(t, theyOwe.Equal(d("42.00")))
	require.True(t, youOwe.IsZero())

	theyOwe, youOwe = Split(d("-13.37"))
	require.True(t, theyOwe.IsZero())
	require.True(t, youOwe.Equal(d("13.37")))

	theyOwe, youOwe = Split(decimal.Zero)
	require.True(t, theyOwe.IsZero())
	require.True(t, youOwe.IsZero())
}
