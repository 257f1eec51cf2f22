package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Patterns shared across the extraction paths.
var (
	// Two-decimal monetary token, e.g. 1,234.56 or 150.00
	amountTokenPattern = regexp.MustCompile(`[\d,]+\.\d{2}`)
	// DD-MM-YY at the start of a statement line
	statementDatePattern = regexp.MustCompile(`^(\d{2}-\d{2}-\d{2})\b`)
	// Bank/UPI reference numbers are 12-digit runs
	referenceNumberPattern = regexp.MustCompile(`\b(\d{12})\b`)
)

// parseAmount converts a string like "1,234.56", "₹450" or "Rs. 200.00"
// into a decimal. Currency symbols, commas and whitespace are stripped.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₹", "")
	replacer := strings.NewReplacer("Rs.", "", "Rs", "", "INR", "", ",", "", " ", "", " ", "")
	s = replacer.Replace(s)

	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// positiveAmount parses s and reports whether it is a usable amount (> 0).
func positiveAmount(s string) (decimal.Decimal, bool) {
	amt, err := parseAmount(s)
	if err != nil || !amt.IsPositive() {
		return decimal.Zero, false
	}
	return amt, true
}

// parseStatementDate interprets a DD-MM-YY token, reading the two-digit
// year as 2000+YY. Returns the date in ISO form (YYYY-MM-DD).
func parseStatementDate(token string) (string, bool) {
	t, err := time.Parse("02-01-06", token)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// ocrDateLayouts are tried in order when parsing dates found in OCR text.
var ocrDateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2/1/2006",
}

// parseFlexibleDate parses a date string against the OCR layouts. An invalid
// calendar date (e.g. "32 Jan 2024") fails every layout and returns false;
// the caller leaves the field unset rather than storing a bad value.
func parseFlexibleDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range ocrDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// splitNarrationFields splits a statement line into fields on whitespace and
// slashes. Bank narrations pack most of their information into slash-delimited
// runs, so a plain whitespace split undercounts what the line carries.
func splitNarrationFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == '/' || r == ' ' || r == '\t'
	})
}

// cleanCounterpartyName normalizes a narration name field. Underscores stand
// in for spaces in bank narrations. Empty or single-character results are too
// noisy to be a name and are rejected.
func cleanCounterpartyName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.TrimSpace(s)
	if len(s) <= 1 {
		return ""
	}
	return s
}

// draftID derives a stable review ID from the source row, so re-running
// extraction on the same input yields identical drafts.
func draftID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "|"))).String()
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
