package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"multicurrency-bank/internal/core/domain"
	"multicurrency-bank/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type plainHasher struct{}

func (plainHasher) Hash(pin string) (string, error) { return "plain:" + pin, nil }

func (plainHasher) Verify(pin string, hash string) (bool, error) {
	return hash == "plain:"+pin, nil
}

func testRegistry() *domain.Registry {
	return domain.NewRegistry([]domain.Currency{
		{Code: "TRY", Name: "Turkish Lira", Symbol: "₺"},
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
	})
}

// runSession feeds a scripted session to the shell and returns everything
// it printed.
func runSession(t *testing.T, script string) string {
	t.Helper()
	ledger := service.NewLedgerService(testRegistry(), plainHasher{}, service.Policy{}, zerolog.Nop())
	var out bytes.Buffer
	sh := New(ledger, testRegistry(), strings.NewReader(script), &out, zerolog.Nop())
	sh.Run(context.Background())
	return out.String()
}

func TestShell_OpenAccountAndCheckBalance(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"1", "Ayşe", "1000", "TRY", "1234",
		"2", "1", "TRY", "1234",
		"7",
	}, "\n")+"\n")

	assert.Contains(t, out, "Account 1 opened for Ayşe.")
	assert.Contains(t, out, "Balance: 1000.00 ₺")
	assert.Contains(t, out, "Goodbye.")
}

func TestShell_DepositFormatsNewBalance(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"1", "Ayşe", "1000", "TRY", "1234",
		"3", "1", "500", "TRY", "1234",
		"7",
	}, "\n")+"\n")

	assert.Contains(t, out, "Done. New balance: 1500.00 ₺")
}

func TestShell_MalformedPINRejectedBeforeEngine(t *testing.T) {
	for _, pin := range []string{"12a4", "123", "12345", ""} {
		out := runSession(t, strings.Join([]string{
			"1", "Ayşe", "1000", "TRY", pin,
			"7",
		}, "\n")+"\n")

		assert.Contains(t, out, "Invalid PIN: must be exactly 4 digits.", "pin %q", pin)
		assert.NotContains(t, out, "opened", "pin %q must never reach the engine", pin)
	}
}

func TestShell_EngineErrorPrintedAndLoopContinues(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"3", "9", "50", "TRY", "1234",
		"7",
	}, "\n")+"\n")

	assert.Contains(t, out, "Error: [ACCT_001] account 9 not found")
	assert.Contains(t, out, "Goodbye.", "an engine error must not end the session")
}

func TestShell_BadAmountReprompts(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"3", "1", "abc",
		"7",
	}, "\n")+"\n")

	assert.Contains(t, out, "Not a valid amount: abc")
	assert.Contains(t, out, "Goodbye.")
}

func TestShell_UnknownMenuChoice(t *testing.T) {
	out := runSession(t, "9\n7\n")

	assert.Contains(t, out, "Unknown choice, please try again.")
	assert.Contains(t, out, "Goodbye.")
}

func TestShell_TransferEchoesSenderBalanceOnly(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"1", "Ayşe", "1500", "TRY", "1234",
		"1", "Mehmet", "0", "TRY", "5678",
		"5", "1", "2", "300", "TRY", "1234",
		"7",
	}, "\n")+"\n")

	assert.Contains(t, out, "Transfer complete.")
	assert.Contains(t, out, "Sender balance: 1200.00 ₺")
	// The receiver's balance needs the receiver's PIN, which the sender
	// does not have.
	assert.NotContains(t, out, "Receiver balance:")
}

func TestShell_HistoryListsEntriesWithCounterparty(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"1", "Ayşe", "1500", "TRY", "1234",
		"1", "Mehmet", "0", "TRY", "5678",
		"5", "1", "2", "300", "TRY", "1234",
		"6", "2", "5678",
		"7",
	}, "\n")+"\n")

	assert.Contains(t, out, "Account opened: 0.00 ₺")
	assert.Contains(t, out, "Transfer in (account 1): 300.00 ₺ (balance: 300.00 ₺)")
}

func TestShell_EOFEndsSession(t *testing.T) {
	// Input running out mid-prompt must end the loop, not spin.
	out := runSession(t, "1\nAyşe\n")
	assert.Contains(t, out, "Opening balance: ")
}

func TestValidPIN(t *testing.T) {
	assert.True(t, validPIN("0000"))
	assert.True(t, validPIN("1234"))
	assert.False(t, validPIN("123"))
	assert.False(t, validPIN("12345"))
	assert.False(t, validPIN("12a4"))
	assert.False(t, validPIN("１２３４"), "wide digits are not ASCII digits")
	assert.False(t, validPIN(""))
}
