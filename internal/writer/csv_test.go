package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/paisaledger/statement-extractor/internal/models"
)

func testDrafts() []models.DraftTransaction {
	return []models.DraftTransaction{
		{
			Date:          "2025-11-04",
			Description:   "UPI/DR/530549342075/Arulpand/YESB/paytmqr5vh/UPI",
			Amount:        decimal.RequireFromString("150.00"),
			Direction:     models.DirectionExpense,
			PaymentMode:   models.PaymentModeUPI,
			ReceiverName:  "Arulpand",
			TransactionID: "530549342075",
		},
		{
			Date:        "2025-11-05",
			Description: "Refund",
			Amount:      decimal.RequireFromString("200"),
			Direction:   models.DirectionIncome,
			SenderName:  "Meena S",
		},
	}
}

func TestReviewWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &ReviewWriter{}
	if err := w.Write(&buf, testDrafts()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: got %d, want 3 (header + 2 rows)", len(lines))
	}

	if lines[0] != "Date,Description,Type,Amount,Payment Mode,Counterparty,Reference" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "2025-11-04,UPI/DR/530549342075/Arulpand/YESB/paytmqr5vh/UPI,expense,150.00,UPI,Arulpand,530549342075" {
		t.Errorf("row 1: got %q", lines[1])
	}
	if lines[2] != "2025-11-05,Refund,income,200.00,,Meena S," {
		t.Errorf("row 2: got %q", lines[2])
	}
}

func TestReviewWriter_Metadata(t *testing.T) {
	var buf bytes.Buffer
	w := &ReviewWriter{
		IncludeMetadata: true,
		Bank:            "HDFC Bank",
		AccountNumber:   "50100123456789",
		StatementPeriod: "01-11-25 to 30-11-25",
	}
	if err := w.Write(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# Bank,HDFC Bank", "# Account Number,50100123456789", "# Statement Period,01-11-25 to 30-11-25"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
