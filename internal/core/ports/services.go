package ports

import (
	"context"

	"multicurrency-bank/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Ledger is the authorized call surface the presentation shell uses. Every
// operation except CreateAccount passes the PIN gate before reading or
// moving money.
type Ledger interface {
	CreateAccount(ctx context.Context, owner string, opening decimal.Decimal, code domain.Code, pin string) (domain.AccountID, error)
	Balance(ctx context.Context, id domain.AccountID, code domain.Code, pin string) (decimal.Decimal, error)
	Deposit(ctx context.Context, id domain.AccountID, amount decimal.Decimal, code domain.Code, pin string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, id domain.AccountID, amount decimal.Decimal, code domain.Code, pin string) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, to domain.AccountID, amount decimal.Decimal, code domain.Code, pin string) error
	Transactions(ctx context.Context, id domain.AccountID, pin string) ([]domain.Transaction, error)
}

// PINHasher hashes PINs for storage and verifies presented PINs.
type PINHasher interface {
	Hash(pin string) (string, error)
	Verify(pin string, hash string) (bool, error)
}
