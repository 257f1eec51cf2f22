package parser

import (
	"testing"

	"github.com/paisaledger/statement-extractor/internal/models"
)

func TestClassifyStatementLine_UPIDebit(t *testing.T) {
	line := "04-11-25 UPI/DR/530549342075/Arulpand/YESB/paytmqr5vh/UPI 150.00 4820.00"

	txn, reason := ClassifyStatementLine(line)
	if txn == nil {
		t.Fatalf("expected a transaction, got skip reason %q", reason)
	}

	if txn.Date != "2025-11-04" {
		t.Errorf("Date: got %q, want %q", txn.Date, "2025-11-04")
	}
	// The final number is the running balance; the one before it is the amount.
	if txn.Amount.String() != "150" {
		t.Errorf("Amount: got %s, want 150 (not the 4820.00 balance)", txn.Amount)
	}
	if txn.Direction != models.DirectionExpense {
		t.Errorf("Direction: got %q, want expense", txn.Direction)
	}
	if txn.PaymentMode != models.PaymentModeUPI {
		t.Errorf("PaymentMode: got %q, want UPI", txn.PaymentMode)
	}
	if txn.RawSource != line {
		t.Errorf("RawSource not preserved verbatim: got %q", txn.RawSource)
	}
	if !txn.Balance.IsZero() {
		t.Errorf("Balance: got %s, want 0 (balance extraction not supported)", txn.Balance)
	}
}

func TestClassifyStatementLine_Gate(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"page header", "Statement of Account for October 2025", skipNoDatePrefix},
		{"column header", "Date Narration Withdrawal Deposit Balance", skipNoDatePrefix},
		{"continuation line", "REF 530549342075 CONTD", skipNoDatePrefix},
		{"four-digit year prefix", "2025-11-04 UPI/DR/1/x/y 10.00 20.00", skipNoDatePrefix},
		{"invalid month", "04-13-25 UPI/DR/530549342075/Arul/YESB 150.00 4820.00", skipBadDate},
		{"too few fields", "04-11-25 ATM 150.00", skipTooFewFields},
		{"no amount", "04-11-25 UPI/DR/530549342075/Arulpand/YESB/paytmqr", skipNoAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, reason := ClassifyStatementLine(tt.line)
			if txn != nil {
				t.Fatalf("expected rejection, got transaction %+v", txn)
			}
			if reason != tt.reason {
				t.Errorf("reason: got %q, want %q", reason, tt.reason)
			}
		})
	}
}

func TestClassifyStatementLine_SingleAmount(t *testing.T) {
	// With exactly one monetary token there is no balance to disambiguate
	// from, so use it directly.
	txn, reason := ClassifyStatementLine("04-11-25 NEFT/CR/AXIS0001/Ravi_Kumar/salary October 25000.00")
	if txn == nil {
		t.Fatalf("expected a transaction, got skip reason %q", reason)
	}
	if txn.Amount.String() != "25000" {
		t.Errorf("Amount: got %s, want 25000", txn.Amount)
	}
	if txn.Direction != models.DirectionIncome {
		t.Errorf("Direction: got %q, want income", txn.Direction)
	}
}

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		line string
		want models.Direction
	}{
		{"04-11-25 UPI/DR/1/x/y 10.00 20.00", models.DirectionExpense},
		{"04-11-25 UPI/CR/1/x/y 10.00 20.00", models.DirectionIncome},
		{"04-11-25 neft debit to landlord a b 10.00", models.DirectionExpense},
		{"04-11-25 salary credit from employer x 10.00", models.DirectionIncome},
		{"04-11-25 CHQ 123 paid to vendor x 10.00", models.DirectionExpense}, // no marker defaults to expense
	}
	for _, tt := range tests {
		if got := classifyDirection(tt.line); got != tt.want {
			t.Errorf("classifyDirection(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestDetectPaymentMode(t *testing.T) {
	tests := []struct {
		line string
		want models.PaymentMode
	}{
		{"04-11-25 UPI/DR/1/x 10.00", models.PaymentModeUPI},
		{"04-11-25 ATM WDL CHENNAI 10.00", models.PaymentModeCash},
		{"04-11-25 POS 416021 AMAZON 10.00", models.PaymentModeCard},
		{"04-11-25 NEFT OUT RENT 10.00", models.PaymentModeNetBanking},
	}
	for _, tt := range tests {
		if got := detectPaymentMode(tt.line); got != tt.want {
			t.Errorf("detectPaymentMode(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestDeriveDescription(t *testing.T) {
	tests := []struct {
		remainder string
		want      string
	}{
		{"UPI/DR/530549342075/Arulpand/YESB/paytmqr5vh/UPI 150.00 4820.00", "UPI/DR/530549342075/Arulpand/YESB/paytmqr5vh/UPI"},
		{"NEFT salary credit 25000.00", "NEFT salary credit"},
		{"no trailing numbers here", "no trailing numbers here"},
	}
	for _, tt := range tests {
		if got := deriveDescription(tt.remainder); got != tt.want {
			t.Errorf("deriveDescription(%q) = %q, want %q", tt.remainder, got, tt.want)
		}
	}
}

func TestParseStatement(t *testing.T) {
	pages := []string{
		`HDFC Bank Statement
Account No: 50100123456789
Statement Period 01-11-25 to 30-11-25
Date Narration Withdrawal Deposit Balance
04-11-25 UPI/DR/530549342075/Arulpand/YESB/paytmqr5vh/UPI 150.00 4820.00
05-11-25 UPI/CR/530549342099/Meena_S/HDFC/refund/UPI 200.00 5020.00
Page 1 of 1`,
	}

	result := ParseStatement(pages)

	if result.Bank != "HDFC Bank" {
		t.Errorf("Bank: got %q, want %q", result.Bank, "HDFC Bank")
	}
	if result.AccountNumber != "50100123456789" {
		t.Errorf("AccountNumber: got %q, want %q", result.AccountNumber, "50100123456789")
	}
	if result.StatementPeriod != "01-11-25 to 30-11-25" {
		t.Errorf("StatementPeriod: got %q", result.StatementPeriod)
	}

	if len(result.Transactions) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(result.Transactions))
	}

	// Expense: counterparty is the receiver.
	txn := result.Transactions[0]
	if txn.ReceiverName != "Arulpand" {
		t.Errorf("txn[0].ReceiverName: got %q, want %q", txn.ReceiverName, "Arulpand")
	}
	if txn.SenderName != "" {
		t.Errorf("txn[0].SenderName: got %q, want unset", txn.SenderName)
	}

	// Income: counterparty is the sender, underscores become spaces.
	txn = result.Transactions[1]
	if txn.SenderName != "Meena S" {
		t.Errorf("txn[1].SenderName: got %q, want %q", txn.SenderName, "Meena S")
	}
	if txn.ReceiverName != "" {
		t.Errorf("txn[1].ReceiverName: got %q, want unset", txn.ReceiverName)
	}

	// Every non-transaction line should be traced as skipped.
	parsed, skipped := 0, 0
	for _, tr := range result.Trace {
		switch tr.Result {
		case "parsed":
			parsed++
		case "skipped":
			skipped++
		}
	}
	if parsed != 2 {
		t.Errorf("trace parsed count: got %d, want 2", parsed)
	}
	if skipped != 5 {
		t.Errorf("trace skipped count: got %d, want 5", skipped)
	}
}

func TestParseStatement_AmountsAlwaysPositive(t *testing.T) {
	pages := []string{
		"04-11-25 UPI/DR/530549342075/Arulpand/YESB/pay/UPI 150.00 4820.00\n" +
			"05-11-25 UPI/DR/530549342076/Somebody/YESB/pay/UPI 0.00 4820.00\n" +
			"06-11-25 UPI/CR/530549342077/Meena/HDFC/ref/UPI 200.00 5020.00",
	}

	result := ParseStatement(pages)
	for i, txn := range result.Transactions {
		if !txn.Amount.IsPositive() {
			t.Errorf("txn[%d].Amount = %s, want > 0", i, txn.Amount)
		}
	}
	if len(result.Transactions) != 2 {
		t.Errorf("zero-amount row should be dropped: got %d transactions, want 2", len(result.Transactions))
	}
}
