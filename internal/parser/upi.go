package parser

import (
	"strings"

	"github.com/paisaledger/statement-extractor/internal/models"
)

// UPIDetails is what the slash-delimited UPI narration convention yields.
// Any field the narration does not carry stays empty.
type UPIDetails struct {
	TransactionID    string
	CounterpartyName string
}

// hasUPIMarker reports whether a narration follows the UPI reference
// convention and is worth decomposing.
func hasUPIMarker(line string) bool {
	return strings.Contains(line, "UPI/") || strings.Contains(line, "/UPI")
}

// DecomposeUPIReference splits the "UPI/..." segment of a narration into its
// conventional fields:
//
//	field 0  literal "UPI"
//	field 1  direction marker (DR/CR)
//	field 2  transaction reference
//	field 3  counterparty name (present only when the narration has ≥4 fields)
//
// When field 2 is not alphanumeric the reference is instead searched as a
// 12-digit run anywhere in the segment. Missing fields are left unset; the
// decomposer never fails.
func DecomposeUPIReference(line string) UPIDetails {
	var details UPIDetails

	start := strings.Index(line, "UPI/")
	if start < 0 {
		return details
	}
	segment := line[start:]
	if end := strings.IndexAny(segment, " \t"); end >= 0 {
		segment = segment[:end]
	}

	fields := strings.Split(segment, "/")

	if len(fields) >= 3 {
		if isAlphanumeric(fields[2]) {
			details.TransactionID = fields[2]
		} else if ref := referenceNumberPattern.FindString(segment); ref != "" {
			details.TransactionID = ref
		}
	}

	if len(fields) >= 4 {
		details.CounterpartyName = cleanCounterpartyName(fields[3])
	}

	return details
}

// applyUPIDetails fills a classified transaction with UPI narration fields.
// The counterparty is always the side that isn't the statement holder:
// receiver for an expense, sender for an income.
func applyUPIDetails(txn *models.BankTransaction, line string) {
	details := DecomposeUPIReference(line)

	if details.TransactionID != "" {
		txn.TransactionID = details.TransactionID
	}
	if details.CounterpartyName != "" {
		if txn.Direction == models.DirectionExpense {
			txn.ReceiverName = details.CounterpartyName
		} else {
			txn.SenderName = details.CounterpartyName
		}
	}
}
