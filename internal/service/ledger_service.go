package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"multicurrency-bank/internal/core/domain"
	"multicurrency-bank/internal/core/ports"
	"multicurrency-bank/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Policy holds the money-movement decisions that are configuration rather
// than engine logic. See config.PolicyConfig for the operator-facing knobs.
type Policy struct {
	AllowNegativeOpening bool
	AllowNegativeDeposit bool
}

// LedgerService owns every account and is the only mutator of balances.
// A single mutex serializes operations: every mutation is a
// read-balance-then-write-balance sequence, and transfer must update two
// accounts and two histories as one unit.
type LedgerService struct {
	mu       sync.Mutex
	accounts map[domain.AccountID]*domain.Account
	nextID   domain.AccountID
	registry *domain.Registry
	hasher   ports.PINHasher
	policy   Policy
	log      zerolog.Logger
	now      func() time.Time
}

// NewLedgerService creates an empty ledger over the given currency registry.
func NewLedgerService(registry *domain.Registry, hasher ports.PINHasher, policy Policy, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		accounts: make(map[domain.AccountID]*domain.Account),
		nextID:   1,
		registry: registry,
		hasher:   hasher,
		policy:   policy,
		log:      log,
		now:      time.Now,
	}
}

// authorize looks up the account and checks the presented PIN.
// Callers must hold mu.
func (s *LedgerService) authorize(id domain.AccountID, pin string) (*domain.Account, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return nil, apperror.ErrAccountNotFound(int64(id))
	}
	match, err := s.hasher.Verify(pin, acct.PINHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verifying PIN: %w", err))
	}
	if !match {
		return nil, apperror.ErrInvalidPIN()
	}
	return acct, nil
}

// CreateAccount opens an account holding exactly one balance entry for the
// given currency. The id is assigned, and nextID advanced, only after every
// validation has passed, so a failed create never consumes an id.
func (s *LedgerService) CreateAccount(ctx context.Context, owner string, opening decimal.Decimal, code domain.Code, pin string) (domain.AccountID, error) {
	if !s.registry.Supported(code) {
		return 0, apperror.ErrInvalidCurrency(string(code))
	}
	if opening.IsNegative() && !s.policy.AllowNegativeOpening {
		return 0, apperror.ErrInvalidAmount()
	}

	hash, err := s.hasher.Hash(pin)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("hashing PIN: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	acct := &domain.Account{
		ID:       id,
		Owner:    owner,
		PINHash:  hash,
		Balances: map[domain.Code]decimal.Decimal{code: opening},
		Transactions: []domain.Transaction{{
			ID:       uuid.New(),
			Time:     s.now().UTC(),
			Kind:     domain.KindOpenAccount,
			Amount:   opening,
			Balance:  opening,
			Currency: code,
		}},
	}
	s.accounts[id] = acct
	s.nextID++

	s.log.Info().
		Int64("account_id", int64(id)).
		Str("currency", string(code)).
		Str("opening_balance", opening.String()).
		Msg("account opened")

	return id, nil
}

// Balance returns the balance held in the given currency. A currency the
// account has never held is an error, not zero.
func (s *LedgerService) Balance(ctx context.Context, id domain.AccountID, code domain.Code, pin string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authorize(id, pin)
	if err != nil {
		return decimal.Zero, err
	}
	if !s.registry.Supported(code) {
		return decimal.Zero, apperror.ErrInvalidCurrency(string(code))
	}
	bal, ok := acct.Balance(code)
	if !ok {
		return decimal.Zero, apperror.ErrCurrencyBalanceNotFound(string(code))
	}
	return bal, nil
}

// Deposit adds amount to the account's balance in the given currency,
// creating the balance entry at zero first when the currency was never
// held. Returns the new balance.
func (s *LedgerService) Deposit(ctx context.Context, id domain.AccountID, amount decimal.Decimal, code domain.Code, pin string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authorize(id, pin)
	if err != nil {
		return decimal.Zero, err
	}
	if !s.registry.Supported(code) {
		return decimal.Zero, apperror.ErrInvalidCurrency(string(code))
	}
	if amount.IsNegative() && !s.policy.AllowNegativeDeposit {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}

	bal, _ := acct.Balance(code) // zero when never held
	newBal := bal.Add(amount)
	acct.Balances[code] = newBal
	acct.Transactions = append(acct.Transactions, domain.Transaction{
		ID:       uuid.New(),
		Time:     s.now().UTC(),
		Kind:     domain.KindDeposit,
		Amount:   amount,
		Balance:  newBal,
		Currency: code,
	})

	s.log.Info().
		Int64("account_id", int64(id)).
		Str("currency", string(code)).
		Str("amount", amount.String()).
		Str("balance", newBal.String()).
		Msg("deposit")

	return newBal, nil
}

// Withdraw removes amount from the account's balance in the given currency.
// The balance entry must already exist and must cover the amount. Returns
// the new balance.
func (s *LedgerService) Withdraw(ctx context.Context, id domain.AccountID, amount decimal.Decimal, code domain.Code, pin string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authorize(id, pin)
	if err != nil {
		return decimal.Zero, err
	}
	if !s.registry.Supported(code) {
		return decimal.Zero, apperror.ErrInvalidCurrency(string(code))
	}
	// A negative withdrawal would slip past the funds check and credit the
	// account, so it is rejected outright rather than made a policy knob.
	if amount.IsNegative() {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}

	bal, ok := acct.Balance(code)
	if !ok {
		return decimal.Zero, apperror.ErrCurrencyBalanceNotFound(string(code))
	}
	if bal.LessThan(amount) {
		return decimal.Zero, apperror.ErrInsufficientFunds()
	}

	newBal := bal.Sub(amount)
	acct.Balances[code] = newBal
	acct.Transactions = append(acct.Transactions, domain.Transaction{
		ID:       uuid.New(),
		Time:     s.now().UTC(),
		Kind:     domain.KindWithdraw,
		Amount:   amount.Neg(),
		Balance:  newBal,
		Currency: code,
	})

	s.log.Info().
		Int64("account_id", int64(id)).
		Str("currency", string(code)).
		Str("amount", amount.String()).
		Str("balance", newBal.String()).
		Msg("withdrawal")

	return newBal, nil
}

// Transfer moves amount between two accounts. Only the sender's PIN is
// required; the receiver authorizes nothing, mirroring real transfer
// semantics. Every precondition is validated before either side is touched,
// then both balance updates and both log entries happen in one critical
// section with one shared timestamp.
func (s *LedgerService) Transfer(ctx context.Context, from, to domain.AccountID, amount decimal.Decimal, code domain.Code, pin string) error {
	if from == to {
		return apperror.ErrSameAccount()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.authorize(from, pin)
	if err != nil {
		return err
	}
	receiver, ok := s.accounts[to]
	if !ok {
		return apperror.ErrAccountNotFound(int64(to))
	}
	if !s.registry.Supported(code) {
		return apperror.ErrInvalidCurrency(string(code))
	}
	// A negative transfer would drain the receiver without its PIN.
	if amount.IsNegative() {
		return apperror.ErrInvalidAmount()
	}
	senderBal, ok := sender.Balance(code)
	if !ok {
		return apperror.ErrCurrencyBalanceNotFound(string(code))
	}
	if senderBal.LessThan(amount) {
		return apperror.ErrInsufficientFunds()
	}

	// All preconditions hold; from here both legs apply or neither does.
	now := s.now().UTC()

	newSenderBal := senderBal.Sub(amount)
	sender.Balances[code] = newSenderBal
	sender.Transactions = append(sender.Transactions, domain.Transaction{
		ID:           uuid.New(),
		Time:         now,
		Kind:         domain.KindTransferOut,
		Amount:       amount.Neg(),
		Balance:      newSenderBal,
		Currency:     code,
		Counterparty: to,
	})

	receiverBal, _ := receiver.Balance(code) // zero when never held
	newReceiverBal := receiverBal.Add(amount)
	receiver.Balances[code] = newReceiverBal
	receiver.Transactions = append(receiver.Transactions, domain.Transaction{
		ID:           uuid.New(),
		Time:         now,
		Kind:         domain.KindTransferIn,
		Amount:       amount,
		Balance:      newReceiverBal,
		Currency:     code,
		Counterparty: from,
	})

	s.log.Info().
		Int64("from", int64(from)).
		Int64("to", int64(to)).
		Str("currency", string(code)).
		Str("amount", amount.String()).
		Msg("transfer")

	return nil
}

// Transactions returns a copy of the account's full ordered history.
func (s *LedgerService) Transactions(ctx context.Context, id domain.AccountID, pin string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authorize(id, pin)
	if err != nil {
		return nil, err
	}
	return acct.History(), nil
}

// Compile-time check: LedgerService implements the Ledger port.
var _ ports.Ledger = (*LedgerService)(nil)
