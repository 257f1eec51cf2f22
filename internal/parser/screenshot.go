package parser

import (
	"regexp"
	"strings"

	"github.com/paisaledger/statement-extractor/internal/models"
)

// Patterns for payment-app screenshot OCR text. Screenshots have no
// structured format; each field is extracted independently and left unset
// when its pattern finds nothing.
var (
	// Currency-symbol-prefixed amount: ₹450, Rs 1,200.50, Rs. 99
	screenshotAmountPattern = regexp.MustCompile(`(?:₹|Rs\.?\s?)\s*([\d,]+(?:\.\d{1,2})?)`)
	// "D Mon YYYY" with optional full month name
	screenshotTextDatePattern = regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})\b`)
	// "D/M/YYYY"
	screenshotSlashDatePattern = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	// Payee marker used by most payment apps
	screenshotPaidToPattern = regexp.MustCompile(`(?i)paid\s+to[:\s]+([^\n]+)`)
)

// ExtractScreenshotFields regex-scans OCR output from a payment-app
// screenshot into a partial draft. This is intentionally a lightweight,
// low-precision convenience fill; the user corrects it in the review UI.
func ExtractScreenshotFields(text string) models.ScreenshotFields {
	fields := models.ScreenshotFields{RawText: text}

	if m := screenshotAmountPattern.FindStringSubmatch(text); m != nil {
		if amt, ok := positiveAmount(m[1]); ok {
			fields.Amount = &amt
		}
	}

	// Try "D Mon YYYY" first, then "D/M/YYYY". A match that is not a valid
	// calendar date leaves the field unset rather than storing a bad value.
	if m := screenshotTextDatePattern.FindStringSubmatch(text); m != nil {
		if date, ok := parseFlexibleDate(m[1]); ok {
			fields.Date = date
		}
	}
	if fields.Date == "" {
		if m := screenshotSlashDatePattern.FindStringSubmatch(text); m != nil {
			if date, ok := parseFlexibleDate(m[1]); ok {
				fields.Date = date
			}
		}
	}

	if m := screenshotPaidToPattern.FindStringSubmatch(text); m != nil {
		fields.Recipient = strings.TrimSpace(m[1])
	}

	if hasUPIMarker(text) || strings.Contains(strings.ToUpper(text), "UPI") {
		fields.PaymentMode = models.PaymentModeUPI
	}
	if ref := referenceNumberPattern.FindString(text); ref != "" {
		fields.TransactionID = ref
	}
	if fields.Recipient != "" {
		// A screenshot of a completed payment is the payer's view.
		fields.ReceiverName = fields.Recipient
	}
	fields.BankName = DetectBank(text)

	return fields
}
