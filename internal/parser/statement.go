package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paisaledger/statement-extractor/internal/models"
)

// Skip reasons reported by the statement line classifier.
const (
	skipNoDatePrefix = "no-date-prefix"
	skipBadDate      = "bad-date"
	skipTooFewFields = "too-few-fields"
	skipNoAmount     = "no-amount"
)

// ParseStatement runs the line classifier over every reconstructed line of
// every page and assembles the statement result. Lines that fail the
// classifier are recorded in the trace rather than silently swallowed.
func ParseStatement(pages []string) *models.StatementResult {
	allText := strings.Join(pages, "\n")

	result := &models.StatementResult{
		Bank:            DetectBank(allText),
		AccountNumber:   findAccountNumber(allText),
		StatementPeriod: findStatementPeriod(allText),
	}

	lineNum := 0
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			lineNum++
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			trace := models.LineTrace{
				LineNum: lineNum,
				Text:    truncateForTrace(line),
				HasDate: statementDatePattern.MatchString(line),
			}

			txn, reason := ClassifyStatementLine(line)
			if txn == nil {
				trace.Result = "skipped"
				trace.Reason = reason
				result.Trace = append(result.Trace, trace)
				continue
			}

			if hasUPIMarker(line) {
				applyUPIDetails(txn, line)
			}

			trace.Result = "parsed"
			result.Trace = append(result.Trace, trace)
			result.Transactions = append(result.Transactions, *txn)
		}
	}

	return result
}

// ClassifyStatementLine decides whether one reconstructed line is a
// transaction row and extracts it if so. The sole gate is a leading DD-MM-YY
// date token; headers, footers and wrapped continuation lines all fail it.
// A nil transaction comes back with the reason the line was rejected.
func ClassifyStatementLine(line string) (*models.BankTransaction, string) {
	line = strings.TrimSpace(line)

	m := statementDatePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, skipNoDatePrefix
	}

	date, ok := parseStatementDate(m[1])
	if !ok {
		return nil, skipBadDate
	}

	remainder := strings.TrimSpace(line[len(m[1]):])
	if len(splitNarrationFields(remainder)) < 5 {
		return nil, skipTooFewFields
	}

	amounts := amountTokenPattern.FindAllString(line, -1)
	if len(amounts) == 0 {
		return nil, skipNoAmount
	}

	// Statements render the transaction amount and the running balance on the
	// same line with no fixed column width. By convention the final number is
	// the balance and the one before it is the amount.
	amountToken := amounts[0]
	if len(amounts) >= 2 {
		amountToken = amounts[len(amounts)-2]
	}
	amount, ok := positiveAmount(amountToken)
	if !ok {
		return nil, skipNoAmount
	}

	txn := &models.BankTransaction{
		DraftTransaction: models.DraftTransaction{
			ID:          draftID("stmt", line),
			Date:        date,
			Description: deriveDescription(remainder),
			Amount:      amount,
			Direction:   classifyDirection(line),
			PaymentMode: detectPaymentMode(line),
			RawSource:   line,
		},
		Balance: decimal.Zero,
	}
	return txn, ""
}

// classifyDirection reads the statement's debit/credit markers. Lines with
// neither marker default to expense.
func classifyDirection(line string) models.Direction {
	upper := strings.ToUpper(line)
	if strings.Contains(upper, "/DR/") || strings.Contains(upper, "DEBIT") {
		return models.DirectionExpense
	}
	if strings.Contains(upper, "/CR/") || strings.Contains(upper, "CREDIT") {
		return models.DirectionIncome
	}
	return models.DirectionExpense
}

// detectPaymentMode classifies the rail from narration keywords. Rows with no
// recognizable marker are treated as direct bank-portal payments.
func detectPaymentMode(line string) models.PaymentMode {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "UPI"):
		return models.PaymentModeUPI
	case strings.Contains(upper, "ATM") || strings.Contains(upper, "CASH"):
		return models.PaymentModeCash
	case strings.Contains(upper, "CARD") || strings.Contains(upper, "POS"):
		return models.PaymentModeCard
	default:
		return models.PaymentModeNetBanking
	}
}

// deriveDescription trims trailing amount/balance tokens off the narration.
// Best-effort: stops at the first trailing token that is not a monetary value.
func deriveDescription(remainder string) string {
	tokens := strings.Fields(remainder)
	end := len(tokens)
	for end > 0 && amountTokenPattern.FindString(tokens[end-1]) == tokens[end-1] {
		end--
	}
	return strings.Join(tokens[:end], " ")
}

func truncateForTrace(line string) string {
	if len(line) > 120 {
		return line[:120] + "..."
	}
	return line
}
