package ledger

import "github.com/shopspring/decimal"

// Entry is the minimal view of a transaction the balance fold needs.
type Entry struct {
	Type   TransactionType
	Amount decimal.Decimal
}

// Balance folds an opening balance and a transaction history into the
// party's current balance: opening + Σdebit − Σcredit. Positive means the
// party owes the owner, negative means the owner owes the party. The fold
// is pure and order-independent; exact decimal arithmetic rules out penny
// drift under repeated summation.
func Balance(opening decimal.Decimal, entries []Entry) decimal.Decimal {
	total := opening
	for _, e := range entries {
		switch e.Type {
		case TypeDebit:
			total = total.Add(e.Amount)
		case TypeCredit:
			total = total.Sub(e.Amount)
		}
	}
	return total
}

// Split decomposes a balance into the two non-negative figures the API
// exposes: they_owe = max(0, balance), you_owe = max(0, -balance). At most
// one of them is nonzero.
func Split(balance decimal.Decimal) (theyOwe, youOwe decimal.Decimal) {
	if balance.IsNegative() {
		return decimal.Zero, balance.Neg()
	}
	return balance, decimal.Zero
}
