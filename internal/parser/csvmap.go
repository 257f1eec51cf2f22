package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paisaledger/statement-extractor/internal/models"
)

// Column aliases tried in order. Bank CSV exports do not standardize header
// names; the first alias present in the header row wins.
var (
	dateAliases        = []string{"Date", "Transaction Date", "Value Date"}
	descriptionAliases = []string{"Description", "Narration", "Remarks"}
	debitAliases       = []string{"Debit", "Withdrawal", "Dr"}
	creditAliases      = []string{"Credit", "Deposit", "Cr"}
)

// Skip reasons reported by the CSV mapper.
const (
	skipMissingDate      = "missing-date"
	skipNoPositiveAmount = "no-positive-amount"
)

// MapCSV reads a CSV export with a header row and emits normalized draft
// transactions. Rows missing a date, or where neither debit nor credit
// resolves to a positive number, are skipped with a recorded reason.
// Malformed CSV structure propagates as an error; there is no partial-row
// recovery beyond the per-row skips.
func MapCSV(r io.Reader) (*models.CSVResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := newColumnMap(header)
	dateCol, hasDate := cols.resolve(dateAliases)
	descCol, hasDesc := cols.resolve(descriptionAliases)
	debitCol, hasDebit := cols.resolve(debitAliases)
	creditCol, hasCredit := cols.resolve(creditAliases)

	if !hasDate {
		return nil, fmt.Errorf("no date column found (tried %s)", strings.Join(dateAliases, ", "))
	}
	if !hasDebit && !hasCredit {
		return nil, fmt.Errorf("no debit or credit column found")
	}

	result := &models.CSVResult{}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed CSV at line %d: %w", line, err)
		}

		raw := strings.Join(record, ",")

		date := fieldAt(record, dateCol)
		if date == "" {
			result.Skipped = append(result.Skipped, models.SkippedRow{
				Line: line, Raw: raw, Reason: skipMissingDate,
			})
			continue
		}

		// Credit takes priority when both columns are populated.
		var direction models.Direction
		amount, ok := positiveAmount(fieldIf(record, creditCol, hasCredit))
		if ok {
			direction = models.DirectionIncome
		} else {
			amount, ok = positiveAmount(fieldIf(record, debitCol, hasDebit))
			direction = models.DirectionExpense
		}
		if !ok {
			result.Skipped = append(result.Skipped, models.SkippedRow{
				Line: line, Raw: raw, Reason: skipNoPositiveAmount,
			})
			continue
		}

		draft := models.DraftTransaction{
			ID:        draftID("csv", strconv.Itoa(line), raw),
			Date:      date,
			Amount:    amount,
			Direction: direction,
			RawSource: raw,
		}
		if hasDesc {
			draft.Description = fieldAt(record, descCol)
		}
		result.Drafts = append(result.Drafts, draft)
	}

	return result, nil
}

// columnMap resolves header names case-insensitively, ignoring surrounding
// whitespace. First occurrence of a duplicated header wins.
type columnMap map[string]int

func newColumnMap(header []string) columnMap {
	m := make(columnMap, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := m[key]; !exists {
			m[key] = i
		}
	}
	return m
}

func (m columnMap) resolve(aliases []string) (int, bool) {
	for _, alias := range aliases {
		if idx, ok := m[strings.ToLower(alias)]; ok {
			return idx, true
		}
	}
	return -1, false
}

func fieldAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func fieldIf(record []string, idx int, present bool) string {
	if !present {
		return ""
	}
	return fieldAt(record, idx)
}
