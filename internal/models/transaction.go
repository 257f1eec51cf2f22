package models

import "github.com/shopspring/decimal"

// Direction classifies which side of the ledger a draft lands on.
// Exactly one direction applies per record; a row is never both.
type Direction string

const (
	DirectionExpense Direction = "expense"
	DirectionIncome  Direction = "income"
)

// PaymentMode is how the money moved, when the statement narration says.
type PaymentMode string

const (
	PaymentModeCash       PaymentMode = "Cash"
	PaymentModeUPI        PaymentMode = "UPI"
	PaymentModeCard       PaymentMode = "Card"
	PaymentModeNetBanking PaymentMode = "NetBanking"
)

// Source identifies which extraction path produced a result.
type Source string

const (
	SourcePDF Source = "pdf"
	SourceCSV Source = "csv"
	SourceOCR Source = "ocr"
)

// DraftTransaction is an unconfirmed, extracted-but-not-yet-persisted
// candidate record awaiting human review. It is the unifying output type
// across the PDF, CSV and screenshot extraction paths.
//
// Amount is always > 0: rows whose amount cannot be parsed as a positive
// number are dropped, never recorded as zero.
type DraftTransaction struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     Direction       `json:"type"`
	PaymentMode   PaymentMode     `json:"paymentMode,omitempty"`
	SenderName    string          `json:"senderName,omitempty"`
	ReceiverName  string          `json:"receiverName,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
	BankName      string          `json:"bankName,omitempty"`
	// RawSource is the original line/row, preserved verbatim so a reviewer
	// can cross-check extraction accuracy.
	RawSource string `json:"rawSource"`
}

// BankTransaction is the PDF-path superset of DraftTransaction. PaymentMode
// is always populated here. Balance is carried for the statement layout but
// running-balance extraction is out of scope, so it stays zero.
type BankTransaction struct {
	DraftTransaction
	Balance decimal.Decimal `json:"balance"`
}

// SkippedRow records why a row was dropped instead of swallowing the reason.
type SkippedRow struct {
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// LineTrace captures what the statement classifier did with each input line.
type LineTrace struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	HasDate bool   `json:"hasDate"`
	Result  string `json:"result"` // "parsed" or "skipped"
	Reason  string `json:"reason,omitempty"`
}

// StatementResult holds everything extracted from one PDF statement.
type StatementResult struct {
	Bank            string            `json:"bank,omitempty"`
	AccountNumber   string            `json:"accountNumber,omitempty"`
	StatementPeriod string            `json:"statementPeriod,omitempty"`
	Transactions    []BankTransaction `json:"transactions"`
	Trace           []LineTrace       `json:"trace,omitempty"`
}

// CSVResult pairs accepted drafts with per-row skip diagnostics.
type CSVResult struct {
	Drafts  []DraftTransaction `json:"drafts"`
	Skipped []SkippedRow       `json:"skipped,omitempty"`
}

// ScreenshotFields is the single best-effort partial record extracted from
// payment-app screenshot OCR text. Every field is optional; absence of a
// pattern simply leaves the field unset.
type ScreenshotFields struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          string           `json:"date,omitempty"`
	Recipient     string           `json:"description,omitempty"`
	PaymentMode   PaymentMode      `json:"paymentMode,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	SenderName    string           `json:"senderName,omitempty"`
	ReceiverName  string           `json:"receiverName,omitempty"`
	BankName      string           `json:"bankName,omitempty"`
	RawText       string           `json:"rawText,omitempty"`
}
