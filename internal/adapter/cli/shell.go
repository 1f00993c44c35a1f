// Package cli is the interactive terminal menu over the ledger. It owns
// all prompting, parsing and formatting; the engine only ever sees parsed
// arguments.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"multicurrency-bank/internal/core/domain"
	"multicurrency-bank/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Shell runs the menu loop. Reader and writer are injected so sessions can
// be scripted in tests.
type Shell struct {
	ledger   ports.Ledger
	registry *domain.Registry
	in       *bufio.Scanner
	out      io.Writer
	log      zerolog.Logger
}

// New creates a shell over the given ledger.
func New(ledger ports.Ledger, registry *domain.Registry, in io.Reader, out io.Writer, log zerolog.Logger) *Shell {
	return &Shell{
		ledger:   ledger,
		registry: registry,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
	}
}

// Run loops until the user quits or input is exhausted.
func (s *Shell) Run(ctx context.Context) {
	for {
		s.printMenu()
		choice, ok := s.prompt("Choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			s.createAccount(ctx)
		case "2":
			s.checkBalance(ctx)
		case "3":
			s.deposit(ctx)
		case "4":
			s.withdraw(ctx)
		case "5":
			s.transfer(ctx)
		case "6":
			s.history(ctx)
		case "7":
			fmt.Fprintln(s.out, "Goodbye.")
			return
		default:
			fmt.Fprintln(s.out, "Unknown choice, please try again.")
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Multi-Currency Bank ---")
	fmt.Fprintln(s.out, "1. Open account")
	fmt.Fprintln(s.out, "2. Check balance")
	fmt.Fprintln(s.out, "3. Deposit")
	fmt.Fprintln(s.out, "4. Withdraw")
	fmt.Fprintln(s.out, "5. Transfer")
	fmt.Fprintln(s.out, "6. Transaction history")
	fmt.Fprintln(s.out, "7. Quit")
}

func (s *Shell) createAccount(ctx context.Context) {
	owner, ok := s.prompt("Account owner: ")
	if !ok {
		return
	}
	opening, ok := s.promptAmount("Opening balance: ")
	if !ok {
		return
	}
	code, ok := s.promptCurrency()
	if !ok {
		return
	}
	pin, ok := s.promptPIN("Choose a 4-digit PIN: ")
	if !ok {
		return
	}

	id, err := s.ledger.CreateAccount(ctx, owner, opening, code, pin)
	if err != nil {
		s.reject(err)
		return
	}
	fmt.Fprintf(s.out, "Account %d opened for %s.\n", id, owner)
}

func (s *Shell) checkBalance(ctx context.Context) {
	id, ok := s.promptID("Account number: ")
	if !ok {
		return
	}
	code, ok := s.promptCurrency()
	if !ok {
		return
	}
	pin, ok := s.promptPIN("PIN: ")
	if !ok {
		return
	}

	bal, err := s.ledger.Balance(ctx, id, code, pin)
	if err != nil {
		s.reject(err)
		return
	}
	fmt.Fprintf(s.out, "Balance: %s\n", s.formatAmount(bal, code))
}

func (s *Shell) deposit(ctx context.Context) {
	id, ok := s.promptID("Account number: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Amount to deposit: ")
	if !ok {
		return
	}
	code, ok := s.promptCurrency()
	if !ok {
		return
	}
	pin, ok := s.promptPIN("PIN: ")
	if !ok {
		return
	}

	newBal, err := s.ledger.Deposit(ctx, id, amount, code, pin)
	if err != nil {
		s.reject(err)
		return
	}
	fmt.Fprintf(s.out, "Done. New balance: %s\n", s.formatAmount(newBal, code))
}

func (s *Shell) withdraw(ctx context.Context) {
	id, ok := s.promptID("Account number: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Amount to withdraw: ")
	if !ok {
		return
	}
	code, ok := s.promptCurrency()
	if !ok {
		return
	}
	pin, ok := s.promptPIN("PIN: ")
	if !ok {
		return
	}

	newBal, err := s.ledger.Withdraw(ctx, id, amount, code, pin)
	if err != nil {
		s.reject(err)
		return
	}
	fmt.Fprintf(s.out, "Done. New balance: %s\n", s.formatAmount(newBal, code))
}

func (s *Shell) transfer(ctx context.Context) {
	from, ok := s.promptID("Sender account number: ")
	if !ok {
		return
	}
	to, ok := s.promptID("Receiver account number: ")
	if !ok {
		return
	}
	amount, ok := s.promptAmount("Amount to transfer: ")
	if !ok {
		return
	}
	code, ok := s.promptCurrency()
	if !ok {
		return
	}
	pin, ok := s.promptPIN("Sender PIN: ")
	if !ok {
		return
	}

	if err := s.ledger.Transfer(ctx, from, to, amount, code, pin); err != nil {
		s.reject(err)
		return
	}
	fmt.Fprintln(s.out, "Transfer complete.")

	// Echo whatever balances the sender's PIN can see.
	if bal, err := s.ledger.Balance(ctx, from, code, pin); err == nil {
		fmt.Fprintf(s.out, "Sender balance: %s\n", s.formatAmount(bal, code))
	}
	if bal, err := s.ledger.Balance(ctx, to, code, pin); err == nil {
		fmt.Fprintf(s.out, "Receiver balance: %s\n", s.formatAmount(bal, code))
	}
}

func (s *Shell) history(ctx context.Context) {
	id, ok := s.promptID("Account number: ")
	if !ok {
		return
	}
	pin, ok := s.promptPIN("PIN: ")
	if !ok {
		return
	}

	entries, err := s.ledger.Transactions(ctx, id, pin)
	if err != nil {
		s.reject(err)
		return
	}
	for _, tx := range entries {
		label := kindLabel(tx.Kind)
		if tx.Counterparty != 0 {
			label = fmt.Sprintf("%s (account %d)", label, tx.Counterparty)
		}
		fmt.Fprintf(s.out, "%s  %s: %s (balance: %s)\n",
			tx.Time.Format("2006-01-02 15:04:05"),
			label,
			s.formatAmount(tx.Amount, tx.Currency),
			s.formatAmount(tx.Balance, tx.Currency),
		)
	}
}

// reject prints the engine's message and returns control to the menu. No
// engine error terminates the session.
func (s *Shell) reject(err error) {
	s.log.Debug().Err(err).Msg("operation rejected")
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) promptID(label string) (domain.AccountID, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		fmt.Fprintln(s.out, "Account numbers are positive integers.")
		return 0, false
	}
	return domain.AccountID(id), true
}

func (s *Shell) promptAmount(label string) (decimal.Decimal, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Fprintf(s.out, "Not a valid amount: %s\n", raw)
		return decimal.Zero, false
	}
	return amount, true
}

func (s *Shell) promptCurrency() (domain.Code, bool) {
	codes := s.registry.Codes()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	raw, ok := s.prompt(fmt.Sprintf("Currency (%s): ", strings.Join(parts, "/")))
	if !ok {
		return "", false
	}
	return domain.Code(raw), true
}

func (s *Shell) promptPIN(label string) (string, bool) {
	raw, ok := s.prompt(label)
	if !ok {
		return "", false
	}
	if !validPIN(raw) {
		fmt.Fprintln(s.out, "Invalid PIN: must be exactly 4 digits.")
		return "", false
	}
	return raw, true
}

// validPIN reports whether pin is exactly four ASCII digits. Checked here
// so the engine never sees a malformed PIN.
func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Shell) formatAmount(amount decimal.Decimal, code domain.Code) string {
	if cur, ok := s.registry.Lookup(code); ok {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), cur.Symbol)
	}
	return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
}

func kindLabel(k domain.TransactionKind) string {
	switch k {
	case domain.KindOpenAccount:
		return "Account opened"
	case domain.KindDeposit:
		return "Deposit"
	case domain.KindWithdraw:
		return "Withdrawal"
	case domain.KindTransferOut:
		return "Transfer out"
	case domain.KindTransferIn:
		return "Transfer in"
	}
	return string(k)
}
