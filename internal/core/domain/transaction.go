package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of money movement.
type TransactionKind string

const (
	KindOpenAccount TransactionKind = "OPEN_ACCOUNT"
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdraw    TransactionKind = "WITHDRAW"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
)

// Transaction is one immutable entry in an account's history. The engine
// appends entries and never touches them again; reads hand out copies.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Time         time.Time       `json:"time"`
	Kind         TransactionKind `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`  // signed: negative when money leaves the account
	Balance      decimal.Decimal `json:"balance"` // balance immediately after the movement
	Currency     Code            `json:"currency"`
	Counterparty AccountID       `json:"counterparty,omitempty"` // other account for transfers, zero otherwise
}
