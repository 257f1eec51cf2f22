// Package writer exports extracted drafts as CSV for offline review.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/paisaledger/statement-extractor/internal/models"
)

// ReviewWriter writes draft transactions in CSV format.
type ReviewWriter struct {
	// IncludeMetadata prepends statement metadata rows when set.
	IncludeMetadata bool
	Bank            string
	AccountNumber   string
	StatementPeriod string
}

// WriteToFile writes drafts to a CSV file at the given path.
func (w *ReviewWriter) WriteToFile(path string, drafts []models.DraftTransaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()
	return w.Write(f, drafts)
}

// Write writes drafts in CSV format to the given writer.
func (w *ReviewWriter) Write(out io.Writer, drafts []models.DraftTransaction) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeMetadata {
		if w.Bank != "" {
			cw.Write([]string{"# Bank", w.Bank})
		}
		if w.AccountNumber != "" {
			cw.Write([]string{"# Account Number", w.AccountNumber})
		}
		if w.StatementPeriod != "" {
			cw.Write([]string{"# Statement Period", w.StatementPeriod})
		}
	}

	header := []string{"Date", "Description", "Type", "Amount", "Payment Mode", "Counterparty", "Reference"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, d := range drafts {
		row := []string{
			d.Date,
			d.Description,
			string(d.Direction),
			d.Amount.StringFixed(2),
			string(d.PaymentMode),
			counterparty(d),
			d.TransactionID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return cw.Error()
}

// counterparty is whichever side of the transfer isn't the account holder.
func counterparty(d models.DraftTransaction) string {
	if d.ReceiverName != "" {
		return d.ReceiverName
	}
	return d.SenderName
}
