package parser

import (
	"regexp"
	"strings"
)

// bankIdentifiers map statement/narration vocabulary to a display name.
// Checked in order; first hit wins.
var bankIdentifiers = []struct {
	name    string
	needles []string
}{
	{"HDFC Bank", []string{"HDFC"}},
	{"ICICI Bank", []string{"ICICI"}},
	{"State Bank of India", []string{"State Bank of India", "SBIN"}},
	{"Axis Bank", []string{"Axis Bank", "UTIB"}},
	{"Kotak Mahindra Bank", []string{"Kotak", "KKBK"}},
	{"Yes Bank", []string{"Yes Bank", "YESB"}},
	{"Punjab National Bank", []string{"Punjab National", "PUNB"}},
	{"Canara Bank", []string{"Canara", "CNRB"}},
}

// DetectBank identifies the bank from statement or narration text.
// Returns "" when nothing matches; the label is cosmetic, never a gate.
func DetectBank(text string) string {
	upper := strings.ToUpper(text)
	for _, bank := range bankIdentifiers {
		for _, needle := range bank.needles {
			if strings.Contains(upper, strings.ToUpper(needle)) {
				return bank.name
			}
		}
	}
	return ""
}

var (
	// Labeled account numbers, possibly masked: "Account No: XXXX1234"
	accountNumberPattern = regexp.MustCompile(`(?i)(?:account\s*(?:no|number)|a/c\s*no?)\s*[:.]?\s*([Xx*\d]{6,20})`)
	// Date tokens used when scanning for a statement period
	periodDatePattern = regexp.MustCompile(`\b\d{2}-\d{2}-\d{2,4}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
)

func findAccountNumber(text string) string {
	if m := accountNumberPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// findStatementPeriod looks for a line mentioning the statement period and
// pulls the two dates off it.
func findStatementPeriod(text string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "statement period") && !strings.Contains(lower, "period") {
			continue
		}
		dates := periodDatePattern.FindAllString(line, 2)
		if len(dates) == 2 {
			return dates[0] + " to " + dates[1]
		}
	}
	return ""
}
