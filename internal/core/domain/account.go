package domain

import "github.com/shopspring/decimal"

// AccountID is a ledger-assigned account number. IDs start at 1 and are
// never reused.
type AccountID int64

// Account is the aggregate for one customer: identity, per-currency
// balances and the append-only movement history. All mutation goes through
// the ledger service; nothing outside it ever holds a live Account.
type Account struct {
	ID           AccountID
	Owner        string
	PINHash      string // Argon2id encoded hash, never the raw PIN
	Balances     map[Code]decimal.Decimal
	Transactions []Transaction
}

// Balance returns the balance held in code and whether the account has
// ever held that currency. A missing entry is not the same as zero.
func (a *Account) Balance(code Code) (decimal.Decimal, bool) {
	bal, ok := a.Balances[code]
	return bal, ok
}

// History returns a copy of the transaction log so callers cannot reach
// the internal slice.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.Transactions))
	copy(out, a.Transactions)
	return out
}
